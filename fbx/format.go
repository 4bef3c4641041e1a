package fbx

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Print writes d as an indented outline, one node per line with its
// properties after a colon. Each level is indented by indent spaces, or by a
// tab if indent is not positive. The outline is diagnostic output; it is not
// FBX.
func (d *Document) Print(w io.Writer, indent int) error {
	unit := "\t"
	if indent > 0 {
		unit = strings.Repeat(" ", indent)
	}

	bw := bufio.NewWriter(w)

	var err error

	walk(d.Nodes, "", 0, func(_ string, depth int, n *Node) bool {
		_, err = fmt.Fprintln(bw, strings.Repeat(unit, depth)+n.String())

		return err == nil
	})

	if err != nil {
		return err
	}

	return bw.Flush()
}

// String returns the node name followed by its comma-separated properties.
func (n *Node) String() string {
	if len(n.Properties) == 0 {
		return n.Name
	}

	return n.Name + nameDelim + " " + strings.Join(n.Properties, propDelim+" ")
}

// FormatJSON writes d as JSON. Output is indented by indent spaces per level,
// or compact if indent is not positive.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(d, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(d)
	}

	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", "json"))
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes d as YAML. Output is in block style indented by indent
// spaces, or in flow style if indent is not positive.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, d, opts...)
	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", "yaml"))
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
