package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/fbxtree/fbx"
	"github.com/ardnew/fbxtree/log"
)

// Dump prints the whole node tree of a scene.
type Dump struct {
	Tree dumpTree `cmd:"" default:"withargs" help:"Print an indented outline"`
	JSON dumpJSON `cmd:"" help:"Print the tree as JSON" name:"json"`
	YAML dumpYAML `cmd:"" help:"Print the tree as YAML" name:"yaml"`
}

type dumpSource struct {
	Source string `arg:"" help:"Scene file, name on the search path, or '-' for stdin"`
	Indent int    `default:"2" help:"Spaces per nesting level (0 for tabs or compact output)" short:"i"`
}

func (d dumpSource) load(ctx context.Context, format string) (*fbx.Document, error) {
	log.DebugContext(ctx, "dump",
		slog.String("source", d.Source),
		slog.String("format", format),
		slog.Int("indent", d.Indent),
	)

	return loadDocument(ctx, d.Source)
}

type dumpTree struct {
	Input dumpSource `embed:""`
}

// Run executes the dump command with outline output.
func (d *dumpTree) Run(ctx context.Context) error {
	doc, err := d.Input.load(ctx, formatText)
	if err != nil {
		return err
	}

	return doc.Print(stdout(ctx), d.Input.Indent)
}

type dumpJSON struct {
	Input dumpSource `embed:""`
}

// Run executes the dump command with JSON output.
func (d *dumpJSON) Run(ctx context.Context) error {
	doc, err := d.Input.load(ctx, formatJSON)
	if err != nil {
		return err
	}

	return doc.FormatJSON(ctx, stdout(ctx), d.Input.Indent)
}

type dumpYAML struct {
	Input dumpSource `embed:""`
}

// Run executes the dump command with YAML output.
func (d *dumpYAML) Run(ctx context.Context) error {
	doc, err := d.Input.load(ctx, formatYAML)
	if err != nil {
		return err
	}

	return doc.FormatYAML(ctx, stdout(ctx), d.Input.Indent)
}
