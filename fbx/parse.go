package fbx

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/fbxtree/log"
)

// Parse reads ASCII FBX text from r and returns its node tree.
//
// Malformed input never causes an error. Unterminated scopes and stray
// closing braces are recorded in [Document.Anomalies] and the tree built so
// far is kept. The only errors are [ErrReadInput], when r fails or ctx is
// canceled between lines; no document is returned in that case.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	o := makeOptions(opts...)

	p := parser{
		ctx:    ctx,
		lines:  newLineReader(r),
		logger: o.logger.With(slog.String("document", o.name)),
		doc:    &Document{Name: o.name},
	}

	if err := p.run(); err != nil {
		return nil, err
	}

	return p.doc, nil
}

// ParseString parses the ASCII FBX text in s.
func ParseString(ctx context.Context, s string, opts ...Option) (*Document, error) {
	return Parse(ctx, strings.NewReader(s), opts...)
}

// ParseFile opens and parses the file at path. The document is named after
// the file's base name without its extension unless [WithName] is given.
// Failure to open the file is reported as [ErrOpenSource].
func ParseFile(ctx context.Context, path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	doc, err := Parse(ctx, f, append([]Option{WithName(NameOf(path))}, opts...)...)
	if err != nil {
		return nil, WrapError(err).With(slog.String("path", path))
	}

	return doc, nil
}

// NameOf returns the document name derived from a source path: its base name
// without extension.
func NameOf(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// scope is an open node awaiting its closing brace.
type scope struct {
	node *Node
	line int
}

type parser struct {
	ctx    context.Context
	lines  *lineReader
	logger log.Logger
	doc    *Document
	open   []scope
}

func (p *parser) run() error {
	p.logger.TraceContext(p.ctx, "parse start")

	for {
		if err := p.ctx.Err(); err != nil {
			return ErrReadInput.Wrap(err).With(slog.Int("line", p.lines.line))
		}

		line, ok := p.lines.next()
		if !ok {
			break
		}

		p.step(line)
	}

	if err := p.lines.failure(); err != nil {
		return ErrReadInput.Wrap(err).With(slog.Int("line", p.lines.line))
	}

	for i := len(p.open) - 1; i >= 0; i-- {
		p.anomaly(p.open[i].line, UnexpectedEOF, slog.String("node", p.open[i].node.Name))
	}

	p.open = nil

	p.logger.DebugContext(p.ctx, "parse complete",
		slog.Int("lines", p.lines.line),
		slog.Int("roots", len(p.doc.Nodes)),
		slog.Int("anomalies", len(p.doc.Anomalies)),
	)

	return nil
}

// step consumes one line. Inside a scope, any line containing a closing
// brace ends the innermost scope before it is classified.
func (p *parser) step(line string) {
	if len(p.open) > 0 && strings.Contains(line, scopeClose) {
		p.open = p.open[:len(p.open)-1]

		return
	}

	switch classify(line) {
	case lineHeader:
		p.header(line)

	case lineOther:
		if len(p.open) == 0 && strings.Contains(line, scopeClose) {
			p.anomaly(p.lines.line, StrayClose)
		}

	case lineBlank, lineComment:
	}
}

func (p *parser) header(line string) {
	h, ok := splitHeader(line)
	if !ok {
		return
	}

	node := &Node{Name: h.name, Properties: h.props}

	if n := len(p.open); n > 0 {
		parent := p.open[n-1].node
		parent.Nodes = append(parent.Nodes, node)
	} else {
		p.doc.Nodes = append(p.doc.Nodes, node)
	}

	if h.scope {
		p.open = append(p.open, scope{node: node, line: p.lines.line})
	}
}

func (p *parser) anomaly(line int, kind AnomalyKind, attrs ...slog.Attr) {
	a := Anomaly{Line: line, Kind: kind}
	p.doc.Anomalies = append(p.doc.Anomalies, a)

	p.logger.DebugContext(p.ctx, "recovered from malformed input",
		append([]slog.Attr{slog.Any("anomaly", a)}, attrs...)...)
}
