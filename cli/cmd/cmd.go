package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ardnew/mung"

	"github.com/ardnew/fbxtree/fbx"
	"github.com/ardnew/fbxtree/log"
	"github.com/ardnew/fbxtree/pkg"
)

// EnvSearchPath names the environment variable listing directories that are
// searched for scene names, separated by [os.PathListSeparator].
const EnvSearchPath = "FBXTREE_PATH"

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands print results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// kongVar returns the kong variable named id, or the empty string.
func kongVar(ctx context.Context, id string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Model.Vars()[id]
	}

	return ""
}

type searchPathKey struct{}

// WithSearchPath returns a new context.Context carrying the directories used
// to resolve scene names: dirs in order, followed by the entries of
// $FBXTREE_PATH.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(
		ctx,
		searchPathKey{},
		composeSearchPath(os.Getenv(EnvSearchPath), dirs...),
	)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// composeSearchPath prefixes the path list env with dirs.
func composeSearchPath(env string, dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(env),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()

	var path []string

	for _, dir := range filepath.SplitList(list) {
		if dir != "" {
			path = append(path, dir)
		}
	}

	return path
}

// resolveSource returns the file named by source. An existing path is used
// as is; otherwise source and source with the scene extension appended are
// tried in each search directory.
func resolveSource(ctx context.Context, source string) (string, error) {
	if isFile(source) {
		return source, nil
	}

	candidates := []string{source}
	if filepath.Ext(source) == "" {
		candidates = append(candidates, source+pkg.Extension)
	}

	dirs := searchPathFrom(ctx)

	for _, dir := range dirs {
		for _, name := range candidates {
			path := filepath.Join(dir, name)
			if isFile(path) {
				log.TraceContext(ctx, "source resolved",
					slog.String("source", source),
					slog.String("path", path),
				)

				return path, nil
			}
		}
	}

	return "", ErrSourceNotFound.With(
		slog.String("source", source),
		slog.Any("search_path", dirs),
	)
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// loadDocument parses the scene named by source, which is "-" for stdin.
// Structural anomalies are logged as warnings.
func loadDocument(ctx context.Context, source string) (*fbx.Document, error) {
	var (
		doc *fbx.Document
		err error
	)

	if source == stdinSource {
		doc, err = fbx.Parse(ctx, os.Stdin, fbx.WithName("stdin"))
	} else {
		var path string

		if path, err = resolveSource(ctx, source); err != nil {
			return nil, err
		}

		doc, err = fbx.ParseFile(ctx, path)
	}

	if err != nil {
		return nil, err
	}

	warnAnomalies(ctx, doc)

	return doc, nil
}

// warnAnomalies logs each structural defect recovered from in doc.
func warnAnomalies(ctx context.Context, doc *fbx.Document) {
	for _, a := range doc.Anomalies {
		log.WarnContext(ctx, "malformed scene",
			slog.String("document", doc.Name),
			slog.Any("anomaly", a),
		)
	}
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueSources resolves each of sources to an absolute path and drops those
// naming a file that was already listed, comparing device/inode pairs after
// resolving symlinks. Sources that cannot be identified are kept.
func uniqueSources(ctx context.Context, sources []string) ([]string, error) {
	unique := make([]string, 0, len(sources))
	seen := make(map[fileKey]struct{})

	for _, src := range sources {
		path, err := resolveSource(ctx, src)
		if err != nil {
			return nil, err
		}

		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}

		if key, ok := keyOf(path); ok {
			if _, dup := seen[key]; dup {
				log.DebugContext(ctx, "duplicate source skipped",
					slog.String("source", src),
				)

				continue
			}

			seen[key] = struct{}{}
		}

		unique = append(unique, path)
	}

	return unique, nil
}

// keyOf returns the fileKey of the file at path, following symlinks.
func keyOf(path string) (fileKey, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
