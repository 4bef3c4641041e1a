package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/fbxtree/pkg"
)

// Version prints the semantic version.
type Version struct {
	BuildInfo bool `help:"Include build metadata and authors" name:"build-info"`
}

// Run executes the version command. With --build-info the full version is
// followed by one line per author.
func (v *Version) Run(ctx context.Context) error {
	w := stdout(ctx)

	if !v.BuildInfo {
		_, err := fmt.Fprintln(w, pkg.Version().Core())

		return err
	}

	if _, err := fmt.Fprintln(w, pkg.Name, pkg.Version().String()); err != nil {
		return err
	}

	for _, a := range pkg.Author {
		if _, err := fmt.Fprintf(w, "author: %s\n", a); err != nil {
			return err
		}
	}

	return nil
}
