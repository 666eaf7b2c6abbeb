// Package render prints console data as a table, JSON, YAML or CSV.
package render

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
	CSV   Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown output format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Table, JSON, YAML, CSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q, use table, json, yaml or csv", ErrUnknownFormat, s)
	}
}

// Dataset is one thing to print. Headers and Rows feed the table and CSV
// formats; Value is encoded as is for JSON and YAML.
type Dataset struct {
	Headers []string
	Rows    [][]string
	Value   any
}

func Render(w io.Writer, f Format, d Dataset) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d.Value)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.Value); err != nil {
			return err
		}
		return enc.Close()
	case CSV:
		cw := csv.NewWriter(w)
		if len(d.Headers) > 0 {
			if err := cw.Write(d.Headers); err != nil {
				return err
			}
		}
		if err := cw.WriteAll(d.Rows); err != nil {
			return err
		}
		return cw.Error()
	case Table, "":
		return writeTable(w, d)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
	}
}

func writeTable(w io.Writer, d Dataset) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(d.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(d.Headers, "\t"))
		sep := make([]string, len(d.Headers))
		for i, h := range d.Headers {
			sep[i] = strings.Repeat("-", max(len([]rune(h)), 3))
		}
		fmt.Fprintln(tw, strings.Join(sep, "\t"))
	}
	for _, row := range d.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "\t", " ")
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// Record renders a single object as field/value pairs.
func Record(headers, values []string, value any) Dataset {
	rows := make([][]string, 0, len(headers))
	for i, h := range headers {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		rows = append(rows, []string{h, v})
	}
	return Dataset{Headers: []string{"Field", "Value"}, Rows: rows, Value: value}
}
