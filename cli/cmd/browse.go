package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/fbxtree/cli/cmd/browse"
	"github.com/ardnew/fbxtree/log"
)

// Browse explores a scene interactively.
type Browse struct {
	Source string `arg:"" help:"Scene file, name on the search path, or '-' for stdin"`
}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) error {
	doc, err := loadDocument(ctx, b.Source)
	if err != nil {
		return err
	}

	history := ""
	if dir := kongVar(ctx, CacheIdentifier); dir != "" {
		history = filepath.Join(dir, browse.HistoryFile)
	}

	return browse.Run(ctx, doc,
		browse.WithHistory(history),
		browse.WithLogger(log.Default()),
		browse.WithInputTTY(b.Source == stdinSource),
	)
}
