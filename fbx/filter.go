package fbx

import (
	"context"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// FilterEnv is the environment of a filter expression, evaluated once per
// node.
type FilterEnv struct {
	// Name is the node name.
	Name string
	// Path is the [PathSeparator]-joined path from the document root.
	Path string
	// Props are the node's literal properties.
	Props []string
	// Depth is 1 for top-level nodes.
	Depth int
	// Children is the number of immediate children.
	Children int
}

// Prop returns the i-th property, or the empty string if there is none.
func (e FilterEnv) Prop(i int) string {
	if i < 0 || i >= len(e.Props) {
		return ""
	}

	return e.Props[i]
}

// Filter is a compiled boolean node predicate.
type Filter struct {
	source  string
	program *vm.Program
}

// CompileFilter compiles an expr-lang expression over [FilterEnv] that must
// evaluate to a boolean, for example:
//
//	Name == "Model" && unquote(Prop(1)) == "Cube"
//
// Besides the fields and methods of FilterEnv, the function unquote removes
// one level of double quotes from an FBX string literal.
func CompileFilter(source string) (*Filter, error) {
	program, err := expr.Compile(source,
		expr.Env(FilterEnv{}),
		expr.AsBool(),
		expr.Function("unquote",
			func(params ...any) (any, error) {
				return unquote(params[0].(string)), nil
			},
			new(func(string) string),
		),
	)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).With(slog.String("source", source))
	}

	return &Filter{source: source, program: program}, nil
}

// String returns the source expression of f.
func (f *Filter) String() string { return f.source }

// Match evaluates f against env.
func (f *Filter) Match(env FilterEnv) (bool, error) {
	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, ErrExprEvaluate.Wrap(err).With(
			slog.String("source", f.source),
			slog.String("path", env.Path),
		)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Match is a node selected by a [Filter].
type Match struct {
	Path string
	Node *Node
}

// Select returns the nodes of d matched by f in depth-first pre-order. The
// first evaluation error stops the search and is returned with the matches
// found so far.
func (d *Document) Select(ctx context.Context, f *Filter) ([]Match, error) {
	var (
		found []Match
		err   error
	)

	walk(d.Nodes, "", 1, func(path string, depth int, n *Node) bool {
		if err = ctx.Err(); err != nil {
			err = ErrExprEvaluate.Wrap(err)

			return false
		}

		var ok bool

		ok, err = f.Match(FilterEnv{
			Name:     n.Name,
			Path:     path,
			Props:    n.Properties,
			Depth:    depth,
			Children: len(n.Nodes),
		})
		if ok {
			found = append(found, Match{Path: path, Node: n})
		}

		return err == nil
	})

	return found, err
}

// unquote removes surrounding double quotes from s. FBX string literals have
// no escape sequences.
func unquote(s string) string {
	s = strings.TrimSpace(s)

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}

	return s
}
