package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/fbxtree/fbx"
	"github.com/ardnew/fbxtree/log"
)

// Find prints the node at a path, or the children of that node with a given
// name.
type Find struct {
	Source   string `arg:"" help:"Scene file, name on the search path, or '-' for stdin"`
	Path     string `arg:"" help:"Node path such as Objects/Model/Properties70"`
	Children string `help:"Print the immediate children with this name instead" placeholder:"NAME" short:"c"`
	Format   string `default:"text" enum:"text,json,yaml" help:"Output format" short:"f"`
	Indent   int    `default:"2" help:"Spaces per nesting level" short:"i"`
}

// Run executes the find command.
func (f *Find) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := loadDocument(ctx, f.Source)
	if err != nil {
		return err
	}

	node, ok := doc.FindNode(f.Path)
	if !ok {
		return ErrNodeNotFound.With(
			slog.String("document", doc.Name),
			slog.String("path", f.Path),
		)
	}

	nodes := []*fbx.Node{node}

	if f.Children != "" {
		nodes = node.FindChildren(f.Children)

		log.DebugContext(ctx, "find children",
			slog.String("path", f.Path),
			slog.String("name", f.Children),
			slog.Int("count", len(nodes)),
		)
	}

	switch f.Format {
	case formatText:
		tree := fbx.Document{Name: doc.Name, Nodes: nodes}

		return tree.Print(stdout(ctx), f.Indent)

	case formatJSON, formatYAML:
		if f.Children != "" {
			return encode(ctx, stdout(ctx), f.Format, f.Indent, nodes)
		}

		return encode(ctx, stdout(ctx), f.Format, f.Indent, node)
	}

	return nil
}
