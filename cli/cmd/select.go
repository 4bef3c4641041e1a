package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/fbxtree/fbx"
	"github.com/ardnew/fbxtree/log"
)

// Select lists every node matched by a filter expression.
type Select struct {
	Source string `arg:"" help:"Scene file, name on the search path, or '-' for stdin"`
	Expr   string `arg:"" help:"Boolean expression over Name, Path, Props, Depth, Children"`
	Format string `default:"text" enum:"text,json,yaml" help:"Output format" short:"f"`
	Count  bool   `help:"Print only the number of matches" short:"n"`
}

// selection is the encoded form of a match.
type selection struct {
	Path       string   `json:"path"                 yaml:"path"`
	Properties []string `json:"properties,omitempty" yaml:"properties,omitempty,flow"`
}

// Run executes the select command.
func (s *Select) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	// Compile before reading so a bad expression fails fast on stdin.
	filter, err := fbx.CompileFilter(s.Expr)
	if err != nil {
		return err
	}

	doc, err := loadDocument(ctx, s.Source)
	if err != nil {
		return err
	}

	matches, err := doc.Select(ctx, filter)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "select",
		slog.String("document", doc.Name),
		slog.String("expr", filter.String()),
		slog.Int("matches", len(matches)),
	)

	w := stdout(ctx)

	if s.Count {
		_, err = fmt.Fprintln(w, len(matches))

		return err
	}

	if s.Format != formatText {
		out := make([]selection, len(matches))
		for i, m := range matches {
			out[i] = selection{Path: m.Path, Properties: m.Node.Properties}
		}

		return encode(ctx, w, s.Format, 2, out)
	}

	for _, m := range matches {
		if _, err = fmt.Fprintln(w, describe(m.Path, m.Node.Properties)); err != nil {
			return err
		}
	}

	return nil
}
