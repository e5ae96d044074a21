// Package format renders CLI payloads. JSON is the default; text produces
// aligned rows for quick terminal reading.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// Write encodes v to w in the requested format ("json" or "text").
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	case "text":
		return writeText(w, v)
	default:
		return fmt.Errorf("formato desconocido: %q (json|text)", format)
	}
}

// writeText flattens through JSON so struct tags drive the field names.
func writeText(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	switch t := x.(type) {
	case []any:
		return writeRows(w, t)
	case map[string]any:
		// A single envelope like {"data": [...]} unwraps to its rows.
		if len(t) == 1 {
			for _, inner := range t {
				if rows, ok := inner.([]any); ok {
					return writeRows(w, rows)
				}
				return writeText(w, inner)
			}
		}
		return writeRows(w, []any{t})
	default:
		_, err := fmt.Fprintln(w, scalarString(x))
		return err
	}
}

func writeRows(w io.Writer, rows []any) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(sin resultados)")
		return err
	}

	// Collect the union of keys, sorted, so every row prints the same columns.
	keySet := map[string]bool{}
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			// Mixed or scalar rows: one per line.
			for _, r := range rows {
				if _, err := fmt.Fprintln(w, scalarString(r)); err != nil {
					return err
				}
			}
			return nil
		}
		for k := range m {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(keys, "\t"))
	for _, r := range rows {
		m := r.(map[string]any)
		cols := make([]string, len(keys))
		for i, k := range keys {
			cols[i] = scalarString(m[k])
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	return tw.Flush()
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return t
	case float64:
		if float64(int64(t)) == t {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "sí"
		}
		return "no"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
