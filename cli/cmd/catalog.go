package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/ardnew/fbxtree/catalog"
	"github.com/ardnew/fbxtree/fbx"
	"github.com/ardnew/fbxtree/log"
)

// Catalog maintains an index of parsed scenes in a SQLite database.
type Catalog struct {
	Add  catalogAdd  `cmd:"" help:"Parse scenes and store them in the catalog"`
	Find catalogFind `cmd:"" help:"Look up a node path across all catalogued scenes"`
	List catalogList `cmd:"" help:"List catalogued scenes"`
}

type catalogDB struct {
	DB string `default:"${catalog}" help:"Catalog database file" name:"db" type:"path"`
}

func (c catalogDB) open(ctx context.Context) (*catalog.Catalog, error) {
	log.DebugContext(ctx, "catalog", slog.String("db", c.DB))

	return catalog.Open(ctx, c.DB)
}

type catalogAdd struct {
	Store catalogDB `embed:""`

	Sources []string `arg:"" help:"Scene files or names on the search path"`
}

// Run executes the catalog add command.
func (c *catalogAdd) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	paths, err := uniqueSources(ctx, c.Sources)
	if err != nil {
		return err
	}

	db, err := c.Store.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	w := tabwriter.NewWriter(stdout(ctx), 0, 4, 2, ' ', 0)

	for _, path := range paths {
		doc, err := fbx.ParseFile(ctx, path)
		if err != nil {
			return err
		}

		warnAnomalies(ctx, doc)

		id, err := db.Add(ctx, path, doc)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%d\t%s\t%d nodes\n", id, path, doc.Len())
	}

	return w.Flush()
}

type catalogFind struct {
	Store catalogDB `embed:""`

	Path   string `arg:"" help:"Node path such as Objects/Model"`
	Format string `default:"text" enum:"text,json,yaml" help:"Output format" short:"f"`
}

// Run executes the catalog find command.
func (c *catalogFind) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	db, err := c.Store.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.Find(ctx, c.Path)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return ErrNodeNotFound.With(slog.String("path", c.Path))
	}

	if c.Format != formatText {
		return encode(ctx, stdout(ctx), c.Format, 2, entries)
	}

	w := tabwriter.NewWriter(stdout(ctx), 0, 4, 2, ' ', 0)

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Source, describe(e.Path, e.Properties))
	}

	return w.Flush()
}

type catalogList struct {
	Store catalogDB `embed:""`
}

// Run executes the catalog list command.
func (c *catalogList) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	db, err := c.Store.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	docs, err := db.Documents(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout(ctx), 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tSOURCE\tNAME\tNODES\tANOMALIES\tADDED")

	for _, d := range docs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			d.ID, d.Source, d.Name, d.Nodes, d.Anomalies,
			d.Added.Local().Format(time.DateTime),
		)
	}

	return w.Flush()
}
