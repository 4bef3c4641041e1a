package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/fbxtree/fbx"
)

func parse(t *testing.T, name, input string) *fbx.Document {
	t.Helper()

	doc, err := fbx.ParseString(context.Background(), input, fbx.WithName(name))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	return doc
}

func openMemory(t *testing.T) *Catalog {
	t.Helper()

	c, err := Open(context.Background(), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	t.Cleanup(func() { c.Close() })

	return c
}

func TestCatalog_AddAndFind(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	cube := parse(t, "cube", "Objects: {\n\tModel: 1, \"Cube\" {\n\t\tVersion: 232\n\t}\n\tModel: 2\n}\n")
	lamp := parse(t, "lamp", "Objects: {\n\tModel: 9, \"Lamp\"\n}\n")

	if _, err := c.Add(ctx, "b/cube.fbx", cube); err != nil {
		t.Fatalf("add cube: %v", err)
	}

	if _, err := c.Add(ctx, "a/lamp.fbx", lamp); err != nil {
		t.Fatalf("add lamp: %v", err)
	}

	got, err := c.Find(ctx, "Objects/Model")
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	want := []Entry{
		{
			Source: "a/lamp.fbx", Document: "lamp", Path: "Objects/Model",
			Depth: 2, Ordinal: 0, Name: "Model", Properties: []string{"9", `"Lamp"`},
		},
		{
			Source: "b/cube.fbx", Document: "cube", Path: "Objects/Model",
			Depth: 2, Ordinal: 0, Name: "Model", Properties: []string{"1", `"Cube" `},
			Children: 1,
		},
		{
			Source: "b/cube.fbx", Document: "cube", Path: "Objects/Model",
			Depth: 2, Ordinal: 1, Name: "Model", Properties: []string{"2"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	missing, err := c.Find(ctx, "Objects/Missing")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}

	if len(missing) != 0 {
		t.Errorf("expected no entries, got %v", missing)
	}
}

func TestCatalog_Add_ReplacesSource(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	if _, err := c.Add(ctx, "scene.fbx", parse(t, "scene", "A: 1\nB: 2\n")); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Add(ctx, "scene.fbx", parse(t, "scene", "A: 3\nOpen: {\n")); err != nil {
		t.Fatal(err)
	}

	docs, err := c.Documents(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	d := docs[0]
	if d.Source != "scene.fbx" || d.Name != "scene" || d.Nodes != 2 || d.Anomalies != 1 {
		t.Errorf("unexpected document info: %+v", d)
	}

	if time.Since(d.Added) > time.Minute {
		t.Errorf("unexpected added time: %v", d.Added)
	}

	entries, err := c.Find(ctx, "A")
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 || entries[0].Properties[0] != "3" {
		t.Errorf("expected only the replacement node, got %+v", entries)
	}

	if entries, _ := c.Find(ctx, "B"); len(entries) != 0 {
		t.Errorf("expected replaced nodes to be removed, got %+v", entries)
	}
}

func TestCatalog_File_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")

	c, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := c.Add(ctx, "x.fbx", parse(t, "x", "Root: {\n\tLeaf: 1\n}\n")); err != nil {
		t.Fatal(err)
	}

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()

	entries, err := c.Find(ctx, "Root/Leaf")
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 || entries[0].Depth != 2 {
		t.Errorf("unexpected entries after reopen: %+v", entries)
	}
}

func TestCatalog_Closed(t *testing.T) {
	c, err := Open(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}

	c.Close()

	if _, err := c.Documents(context.Background()); !errors.Is(err, ErrQuery) {
		t.Errorf("expected ErrQuery, got %v", err)
	}

	if _, err := c.Add(context.Background(), "x", &fbx.Document{}); !errors.Is(err, ErrWrite) {
		t.Errorf("expected ErrWrite, got %v", err)
	}
}
