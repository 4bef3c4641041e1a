// Package catalog indexes parsed ASCII FBX documents in a SQLite database so
// that nodes can be looked up by path across many scenes.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ardnew/fbxtree/fbx"
	"github.com/ardnew/fbxtree/log"
)

//go:embed schema.sql
var schemaSQL string

// Catalog is a SQLite-backed index of documents and their nodes.
type Catalog struct {
	db *sql.DB
}

// Entry is a catalogued node.
type Entry struct {
	Source     string   `json:"source"               yaml:"source"`
	Document   string   `json:"document"             yaml:"document"`
	Path       string   `json:"path"                 yaml:"path"`
	Depth      int      `json:"depth"                yaml:"depth"`
	Ordinal    int      `json:"ordinal"              yaml:"ordinal"`
	Name       string   `json:"name"                 yaml:"name"`
	Properties []string `json:"properties,omitempty" yaml:"properties,omitempty,flow"`
	Children   int      `json:"children"             yaml:"children"`
}

// DocumentInfo summarizes a catalogued document.
type DocumentInfo struct {
	ID        int64
	Source    string
	Name      string
	Nodes     int
	Anomalies int
	Added     time.Time
}

// Open opens the catalog database at path, creating the file and its parent
// directory if missing. An empty path opens a private in-memory catalog.
func Open(ctx context.Context, path string) (*Catalog, error) {
	dsn := "file::memory:?_pragma=foreign_keys(1)"

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, ErrOpen.Wrap(err).With(slog.String("path", path))
		}

		// Apply PRAGMA's per-connection via DSN so the pool always has them.
		dsn = fmt.Sprintf(
			"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
			path,
		)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, ErrOpen.Wrap(err).With(slog.String("path", path))
	}

	if path == "" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()

		return nil, ErrSchema.Wrap(err).With(slog.String("path", path))
	}

	log.DebugContext(ctx, "catalog open", slog.String("path", path))

	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}

	return nil
}

// Add stores doc under source, replacing any document previously added from
// the same source. It returns the document's row ID.
func (c *Catalog) Add(ctx context.Context, source string, doc *fbx.Document) (id int64, err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ErrWrite.Wrap(err).With(slog.String("source", source))
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
			err = ErrWrite.Wrap(err).With(slog.String("source", source))
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM documents WHERE source = ?`, source); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO documents (source, name, added_at) VALUES (?, ?, ?)`,
		source, doc.Name, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}

	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	if err = insertNodes(ctx, tx, id, doc.Nodes); err != nil {
		return 0, err
	}

	for _, a := range doc.Anomalies {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO anomalies (document_id, line, kind) VALUES (?, ?, ?)`,
			id, a.Line, a.Kind.String(),
		); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	log.DebugContext(ctx, "catalog add",
		slog.String("source", source),
		slog.Int64("id", id),
		slog.Int("nodes", doc.Len()),
	)

	return id, nil
}

// pending is a run of sibling nodes waiting to be inserted under parent.
type pending struct {
	parent sql.NullInt64
	path   string
	depth  int
	next   int
	nodes  []*fbx.Node
}

func insertNodes(ctx context.Context, tx *sql.Tx, docID int64, roots []*fbx.Node) error {
	nodeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (document_id, parent_id, ordinal, depth, name, path)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	propStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO properties (node_id, ordinal, value) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer propStmt.Close()

	stack := []pending{{depth: 1, nodes: roots}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.nodes) {
			stack = stack[:len(stack)-1]

			continue
		}

		ordinal := top.next
		n := top.nodes[ordinal]
		top.next++

		path := fbx.Join(top.path, n.Name)

		res, err := nodeStmt.ExecContext(ctx, docID, top.parent, ordinal, top.depth, n.Name, path)
		if err != nil {
			return err
		}

		nodeID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for i, p := range n.Properties {
			if _, err := propStmt.ExecContext(ctx, nodeID, i, p); err != nil {
				return err
			}
		}

		if len(n.Nodes) > 0 {
			stack = append(stack, pending{
				parent: sql.NullInt64{Int64: nodeID, Valid: true},
				path:   path,
				depth:  top.depth + 1,
				nodes:  n.Nodes,
			})
		}
	}

	return nil
}

// Find returns the nodes at path in every catalogued document, ordered by
// source and then by position in the document.
func (c *Catalog) Find(ctx context.Context, path string) ([]Entry, error) {
	const query = `
		SELECT n.id, d.source, d.name, n.path, n.depth, n.ordinal, n.name,
		       (SELECT COUNT(*) FROM nodes k WHERE k.parent_id = n.id)
		  FROM nodes n
		  JOIN documents d ON d.id = n.document_id
		 WHERE n.path = ?
		 ORDER BY d.source, n.id`

	rows, err := c.db.QueryContext(ctx, query, path)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("path", path))
	}
	defer rows.Close()

	var (
		entries []Entry
		ids     []int64
	)

	for rows.Next() {
		var (
			e  Entry
			id int64
		)

		if err := rows.Scan(
			&id, &e.Source, &e.Document, &e.Path, &e.Depth, &e.Ordinal, &e.Name, &e.Children,
		); err != nil {
			return nil, ErrQuery.Wrap(err).With(slog.String("path", path))
		}

		entries = append(entries, e)
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("path", path))
	}

	rows.Close()

	for i, id := range ids {
		props, err := c.properties(ctx, id)
		if err != nil {
			return nil, ErrQuery.Wrap(err).With(slog.String("path", path))
		}

		entries[i].Properties = props
	}

	return entries, nil
}

func (c *Catalog) properties(ctx context.Context, nodeID int64) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT value FROM properties WHERE node_id = ? ORDER BY ordinal`, nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []string

	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}

		props = append(props, v)
	}

	return props, rows.Err()
}

// Documents returns every catalogued document ordered by source.
func (c *Catalog) Documents(ctx context.Context) ([]DocumentInfo, error) {
	const query = `
		SELECT d.id, d.source, d.name, d.added_at,
		       (SELECT COUNT(*) FROM nodes n WHERE n.document_id = d.id),
		       (SELECT COUNT(*) FROM anomalies a WHERE a.document_id = d.id)
		  FROM documents d
		 ORDER BY d.source`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	defer rows.Close()

	var docs []DocumentInfo

	for rows.Next() {
		var (
			d     DocumentInfo
			added string
		)

		if err := rows.Scan(&d.ID, &d.Source, &d.Name, &added, &d.Nodes, &d.Anomalies); err != nil {
			return nil, ErrQuery.Wrap(err)
		}

		if d.Added, err = time.Parse(time.RFC3339Nano, added); err != nil {
			return nil, ErrQuery.Wrap(err).With(slog.String("added_at", added))
		}

		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, ErrQuery.Wrap(err)
	}

	return docs, nil
}
