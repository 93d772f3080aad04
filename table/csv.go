package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

func encodeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	if err := cw.WriteAll(t.Records); err != nil {
		return fmt.Errorf("csv rows: %w", err)
	}
	return nil
}
