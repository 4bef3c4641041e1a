package fbx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

const formatFixture = "Root: {\n\tChild: \"a\", b\n\tLeaf:\n}\nTop: x, y\n"

func TestDocument_Print(t *testing.T) {
	doc := mustParse(t, formatFixture)

	tests := []struct {
		name   string
		indent int
		want   string
	}{
		{"spaces", 2, "Root\n  Child: \"a\", b\n  Leaf\nTop: x, y\n"},
		{"tabs", 0, "Root\n\tChild: \"a\", b\n\tLeaf\nTop: x, y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := doc.Print(&buf, tt.indent); err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDocument_FormatJSON(t *testing.T) {
	doc, err := ParseString(context.Background(), formatFixture, WithName("fixture"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := doc.FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatal(err)
	}

	want := `{"name":"fixture","nodes":[{"name":"Root","nodes":[` +
		`{"name":"Child","properties":["\"a\"","b"]},{"name":"Leaf"}]},` +
		`{"name":"Top","properties":["x","y"]}]}` + "\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := doc.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	var got Document
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("indented output is not JSON: %v", err)
	}

	if diff := cmp.Diff(doc.Nodes, got.Nodes); diff != "" {
		t.Errorf("indented output mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_FormatYAML(t *testing.T) {
	doc, err := ParseString(context.Background(), formatFixture, WithName("fixture"))
	if err != nil {
		t.Fatal(err)
	}

	for _, indent := range []int{0, 2, 4} {
		var buf bytes.Buffer
		if err := doc.FormatYAML(context.Background(), &buf, indent); err != nil {
			t.Fatalf("indent %d: %v", indent, err)
		}

		var got Document
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("indent %d: output is not YAML: %v\n%s", indent, err, buf.String())
		}

		if got.Name != "fixture" {
			t.Errorf("indent %d: name = %q", indent, got.Name)
		}

		if diff := cmp.Diff(doc.Nodes, got.Nodes); diff != "" {
			t.Errorf("indent %d: mismatch (-want +got):\n%s", indent, diff)
		}
	}
}

func TestNode_String(t *testing.T) {
	tests := []struct {
		node *Node
		want string
	}{
		{&Node{Name: "A"}, "A"},
		{&Node{Name: "A", Properties: []string{"1"}}, "A: 1"},
		{&Node{Name: "P", Properties: []string{`"x"`, "", "2"}}, `P: "x", , 2`},
	}

	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
