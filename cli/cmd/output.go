package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Output formats accepted by commands with a --format flag.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// encode writes v to w as JSON or YAML, indented by indent spaces per level.
func encode(ctx context.Context, w io.Writer, format string, indent int, v any) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case formatJSON:
		if indent > 0 {
			data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(v)
		}

		if err == nil {
			data = append(data, '\n')
		}

	case formatYAML:
		if indent <= 0 {
			indent = 2
		}

		data, err = yaml.MarshalContext(ctx, v, yaml.Indent(indent))

	default:
		err = fmt.Errorf("unsupported format %q", format)
	}

	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", format))
	}

	_, err = w.Write(data)

	return err
}

// describe formats a node path with its properties in the same shape as
// [fbx.Node.String].
func describe(path string, props []string) string {
	if len(props) == 0 {
		return path
	}

	return path + ": " + strings.Join(props, ", ")
}
