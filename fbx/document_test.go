package fbx

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sceneFixture = `; FBX 7.4.0 project file
FBXHeaderExtension:  {
	FBXVersion: 7400
}
Objects:  {
	Model: 100, "Model::Cube", "Mesh" {
		Version: 232
		Properties70:  {
			P: "Lcl Translation", "Lcl Translation", "", "A",0,0,0
		}
	}
	Model: 200, "Model::Light", "Light" {
		Version: 232
	}
	Geometry: 300, "Geometry::Cube", "Mesh" {
		Vertices: *24 {
			a: -1,-1,1,1,-1,1
		}
	}
}
Connections:  {
	C: "OO",100,0
	C: "OO",300,100
}
`

func mustParse(t *testing.T, input string) *Document {
	t.Helper()

	doc, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	return doc
}

func TestDocument_FindNode(t *testing.T) {
	doc := mustParse(t, "Root: {\n\tChild: 5\n}\n")

	child, ok := doc.FindNode("Root/Child")
	if !ok {
		t.Fatal("expected Root/Child to be found")
	}

	if diff := cmp.Diff(&Node{Name: "Child", Properties: []string{"5"}}, child); diff != "" {
		t.Errorf("node mismatch (-want +got):\n%s", diff)
	}

	if n, ok := doc.FindNode("Root/Missing"); ok || n != nil {
		t.Errorf("expected Root/Missing not found, got %v", n)
	}
}

func TestDocument_FindNode_Paths(t *testing.T) {
	doc := mustParse(t, sceneFixture)

	tests := []struct {
		path  string
		found bool
		props []string
	}{
		{"Objects", true, nil},
		{"Objects/Model", true, []string{"100", `"Model::Cube"`, `"Mesh" `}},
		{"Objects/Model/Version", true, []string{"232"}},
		{"Objects/Geometry/Vertices/a", true, []string{"-1", "-1", "1", "1", "-1", "1"}},
		{"FBXHeaderExtension/FBXVersion", true, []string{"7400"}},
		{"Connections/C", true, []string{`"OO"`, "100", "0"}},
		{"Missing", false, nil},
		{"Objects/Missing/Version", false, nil},
		{"Objects/Model/Version/Deeper", false, nil},
		{"", false, nil},
		{"Objects/", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n, ok := doc.FindNode(tt.path)
			if ok != tt.found {
				t.Fatalf("FindNode(%q) found = %v, want %v", tt.path, ok, tt.found)
			}

			if !ok {
				if n != nil {
					t.Errorf("expected nil node on miss, got %v", n)
				}

				return
			}

			if diff := cmp.Diff(tt.props, n.Properties); diff != "" {
				t.Errorf("properties mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDocument_FindNode_Nil(t *testing.T) {
	var doc *Document

	if _, ok := doc.FindNode("A"); ok {
		t.Error("expected miss on nil document")
	}
}

func TestNode_FindChildren(t *testing.T) {
	doc := mustParse(t, "P: {\n\tA: 1\n\tB: 2\n\tA: 3\n}\n")

	parent, ok := doc.FindNode("P")
	if !ok {
		t.Fatal("expected P")
	}

	got := parent.FindChildren("A")
	want := []*Node{
		{Name: "A", Properties: []string{"1"}},
		{Name: "A", Properties: []string{"3"}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	if got[0] != parent.Nodes[0] || got[1] != parent.Nodes[2] {
		t.Error("expected the children themselves, not copies")
	}

	if got := parent.FindChildren("Z"); got == nil || len(got) != 0 {
		t.Errorf("expected empty result, got %#v", got)
	}

	var nilNode *Node
	if got := nilNode.FindChildren("A"); len(got) != 0 {
		t.Errorf("expected empty result for nil node, got %v", got)
	}
}

func TestDocument_FindNode_FirstDuplicateWins(t *testing.T) {
	doc := mustParse(t, sceneFixture)

	model, ok := doc.FindNode("Objects/Model")
	if !ok {
		t.Fatal("expected Objects/Model")
	}

	if model.Properties[0] != "100" {
		t.Errorf("expected first Model, got %v", model.Properties)
	}

	objects, _ := doc.FindNode("Objects")
	if n := len(objects.FindChildren("Model")); n != 2 {
		t.Errorf("expected 2 models, got %d", n)
	}
}

func TestDocument_Walk(t *testing.T) {
	doc := mustParse(t, "A: {\n\tB: {\n\t\tC: 1\n\t}\n\tD: 2\n}\nE: 3\n")

	var paths []string
	for path := range doc.Walk() {
		paths = append(paths, path)
	}

	want := []string{"A", "A/B", "A/B/C", "A/D", "E"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}

	if doc.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", doc.Len(), len(want))
	}
}

func TestDocument_Walk_Break(t *testing.T) {
	doc := mustParse(t, sceneFixture)

	count := 0
	for range doc.Walk() {
		count++
		if count == 3 {
			break
		}
	}

	if count != 3 {
		t.Errorf("expected iteration to stop at 3, got %d", count)
	}
}

func TestNode_Walk(t *testing.T) {
	doc := mustParse(t, sceneFixture)

	geometry, ok := doc.FindNode("Objects/Geometry")
	if !ok {
		t.Fatal("expected Objects/Geometry")
	}

	var paths []string
	for path := range geometry.Walk("Objects") {
		paths = append(paths, path)
	}

	want := []string{"Objects/Geometry", "Objects/Geometry/Vertices", "Objects/Geometry/Vertices/a"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestJoin(t *testing.T) {
	if got := Join("", "A"); got != "A" {
		t.Errorf("Join(\"\", A) = %q", got)
	}

	if got := Join("A/B", "C"); got != "A/B/C" {
		t.Errorf("Join(A/B, C) = %q", got)
	}
}
