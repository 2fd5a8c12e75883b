package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lugassawan/gitlogjson/internal/history"
	"github.com/lugassawan/gitlogjson/internal/termcolor"
)

// columnTitles maps fields to table headers.
var columnTitles = map[history.Field]string{
	history.FieldHash:        "HASH",
	history.FieldSubject:     "SUBJECT",
	history.FieldDate:        "DATE",
	history.FieldBody:        "BODY",
	history.FieldAuthorName:  "AUTHOR",
	history.FieldAuthorEmail: "EMAIL",
}

// Render writes res to w in the given format. Passthrough blocks are
// written verbatim in table format.
func Render(w io.Writer, res *history.Result, format Format, p *termcolor.Painter) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, res.Value())
	case FormatYAML:
		return WriteYAML(w, res.Value())
	case FormatTable:
		if res.Passthrough() {
			return writeBlocks(w, res.Blocks)
		}
		renderTable(w, res, p)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeBlocks(w io.Writer, blocks []string) error {
	for i, b := range blocks {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, b); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, res *history.Result, p *termcolor.Painter) {
	if len(res.Commits) == 0 {
		fmt.Fprintln(w, "No commits found.")
		return
	}

	tbl := termcolor.NewTable(2)
	header := make([]string, len(res.Fields))
	for i, f := range res.Fields {
		header[i] = p.Paint(columnTitles[f], termcolor.Bold)
	}
	tbl.AddRow(header...)

	for _, c := range res.Commits {
		row := make([]string, len(res.Fields))
		for i, f := range res.Fields {
			v, _ := c.Get(f)
			row[i] = cell(f, v, p)
		}
		tbl.AddRow(row...)
	}
	tbl.Render(w)
}

// cell shortens and colors one value. Multi-line bodies keep their first line.
func cell(f history.Field, v string, p *termcolor.Painter) string {
	switch f {
	case history.FieldHash:
		if len(v) > 12 {
			v = v[:12]
		}
		return p.Paint(v, termcolor.Yellow)
	case history.FieldDate:
		return p.Paint(v, termcolor.Green)
	case history.FieldAuthorName, history.FieldAuthorEmail:
		return p.Paint(v, termcolor.Cyan)
	case history.FieldBody:
		if first, _, found := strings.Cut(v, "\n"); found {
			return first + p.Paint(" …", termcolor.Gray)
		}
		return v
	default:
		return v
	}
}
