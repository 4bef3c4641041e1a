package fbx

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// lineKind classifies a raw source line.
type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineHeader
	lineOther
)

const (
	commentMarker = ';'
	nameDelim     = ":"
	propDelim     = ","
	scopeOpen     = "{"
	scopeClose    = "}"
)

func classify(line string) lineKind {
	switch {
	case line == "":
		return lineBlank
	case isComment(line):
		return lineComment
	case strings.Contains(line, nameDelim):
		return lineHeader
	default:
		return lineOther
	}
}

// isComment reports whether the first character of line that is neither a
// space nor a tab is the comment marker.
func isComment(line string) bool {
	for i := range len(line) {
		switch line[i] {
		case ' ', '\t':
			continue
		case commentMarker:
			return true
		default:
			return false
		}
	}

	return false
}

// header is a node header split into its parts.
type header struct {
	name  string
	props []string
	scope bool // header opens a nested scope
}

// splitHeader splits line at its first colon. The name is the left part with
// every tab removed. The header opens a scope if line contains an opening
// brace anywhere; a brace ending the line is not part of the properties.
func splitHeader(line string) (header, bool) {
	name, rest, ok := strings.Cut(line, nameDelim)
	if !ok {
		return header{}, false
	}

	h := header{
		name:  strings.ReplaceAll(name, "\t", ""),
		scope: strings.Contains(line, scopeOpen),
	}

	h.props = splitProperties(strings.TrimSuffix(rest, scopeOpen))

	return h, true
}

// splitProperties splits s on commas. Fragments that are empty or contain
// only whitespace are dropped, and a single leading space is removed from
// each remaining fragment.
func splitProperties(s string) []string {
	var props []string

	for frag := range strings.SplitSeq(s, propDelim) {
		if strings.TrimFunc(frag, unicode.IsSpace) == "" {
			continue
		}

		props = append(props, strings.TrimPrefix(frag, " "))
	}

	return props
}

// lineReader yields source lines without their terminators. Lines of any
// length are supported.
type lineReader struct {
	r    *bufio.Reader
	line int
	err  error
}

func newLineReader(r io.Reader) *lineReader {
	if br, ok := r.(*bufio.Reader); ok {
		return &lineReader{r: br}
	}

	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next line and true, or false at end of input or on a read
// failure. Check err after next returns false.
func (lr *lineReader) next() (string, bool) {
	if lr.err != nil {
		return "", false
	}

	line, err := lr.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			lr.err = err

			return "", false
		}

		if line == "" {
			lr.err = io.EOF

			return "", false
		}

		lr.err = io.EOF
	}

	lr.line++

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return line, true
}

// failure returns the read error that stopped the reader, or nil if input
// ended normally.
func (lr *lineReader) failure() error {
	if lr.err == io.EOF {
		return nil
	}

	return lr.err
}
