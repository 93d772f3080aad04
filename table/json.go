package table

import (
	"encoding/json"
	"fmt"
	"io"
)

type jsonTable struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

func encodeJSON(w io.Writer, t *Table) error {
	out := jsonTable{Columns: t.Columns, Rows: make([]map[string]string, 0, len(t.Records))}
	for i, rec := range t.Records {
		if len(rec) != len(t.Columns) {
			return fmt.Errorf("row %d: %d fields, want %d", i+1, len(rec), len(t.Columns))
		}
		row := make(map[string]string, len(rec))
		for j, col := range t.Columns {
			row[col] = rec[j]
		}
		out.Rows = append(out.Rows, row)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
