package fbx

//go:generate go tool stringer --linecomment --type AnomalyKind --output anomaly_string.go

import (
	"fmt"
	"log/slog"
)

// AnomalyKind classifies a structural defect that the parser recovered from.
type AnomalyKind int

const (
	// UnexpectedEOF is recorded for each scope still open at end of input.
	UnexpectedEOF AnomalyKind = iota // unexpected EOF
	// StrayClose is recorded for a closing brace outside of any scope.
	StrayClose // stray closing brace
)

// Anomaly is a recovered structural defect. Line is 1-based and refers to
// the header that opened the unterminated scope, or to the stray brace.
type Anomaly struct {
	Line int
	Kind AnomalyKind
}

func (a Anomaly) String() string {
	return fmt.Sprintf("line %d: %s", a.Line, a.Kind)
}

// LogValue implements slog.LogValuer.
func (a Anomaly) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", a.Line),
		slog.String("kind", a.Kind.String()),
	)
}
