package fbx

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompileFilter_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"syntax", `Name ==`},
		{"not boolean", `Name`},
		{"unknown variable", `Bogus == 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileFilter(tt.source)
			if f != nil {
				t.Errorf("expected no filter, got %v", f)
			}

			if !errors.Is(err, ErrExprCompile) {
				t.Errorf("expected ErrExprCompile, got %v", err)
			}
		})
	}
}

func TestDocument_Select(t *testing.T) {
	doc := mustParse(t, sceneFixture)

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "by name",
			source: `Name == "Model"`,
			want:   []string{"Objects/Model", "Objects/Model"},
		},
		{
			name:   "by unquoted property",
			source: `unquote(Prop(1)) == "Model::Light"`,
			want:   []string{"Objects/Model"},
		},
		{
			name:   "by depth",
			source: `Depth == 1`,
			want:   []string{"FBXHeaderExtension", "Objects", "Connections"},
		},
		{
			name:   "by path and children",
			source: `Path startsWith "Objects/Geometry" && Children == 0`,
			want:   []string{"Objects/Geometry/Vertices/a"},
		},
		{
			name:   "by property count",
			source: `Name == "C" && len(Props) == 3 && Prop(1) == "300"`,
			want:   []string{"Connections/C"},
		},
		{
			name:   "out of range property",
			source: `Prop(10) != ""`,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileFilter(tt.source)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}

			matches, err := doc.Select(context.Background(), f)
			if err != nil {
				t.Fatalf("select: %v", err)
			}

			var got []string
			for _, m := range matches {
				got = append(got, m.Path)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("paths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDocument_Select_EvaluationError(t *testing.T) {
	doc := mustParse(t, "A: 1\nB: 2\n")

	f, err := CompileFilter(`Props[5] == "x"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	_, err = doc.Select(context.Background(), f)
	if !errors.Is(err, ErrExprEvaluate) {
		t.Errorf("expected ErrExprEvaluate, got %v", err)
	}
}

func TestDocument_Select_Canceled(t *testing.T) {
	doc := mustParse(t, "A: 1\n")

	f, err := CompileFilter(`true`)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := doc.Select(ctx, f); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestUnquote(t *testing.T) {
	tests := map[string]string{
		`"Model::Cube"`: "Model::Cube",
		` "padded" `:    "padded",
		`"a\b"`:         `a\b`,
		`plain`:         "plain",
		`"`:             `"`,
	}

	for in, want := range tests {
		if got := unquote(in); got != want {
			t.Errorf("unquote(%q) = %q, want %q", in, got, want)
		}
	}
}
