// Package table encodes a flattened transcript (a fixed column order plus
// ordered string records) as CSV, JSON or a SQLite database.
package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown table format")

type Format string

const (
	CSV    Format = "csv"
	JSON   Format = "json"
	SQLite Format = "sqlite"
)

// ParseFormat accepts a format name case-insensitively; "" means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return CSV, nil
	case CSV, JSON, SQLite:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (valid: csv, json, sqlite)", ErrUnknownFormat, s)
}

// Extension is the file extension, with the leading dot, for f.
func (f Format) Extension() string {
	if f == SQLite {
		return ".sqlite"
	}
	return "." + string(f)
}

// ContentType is the MIME type used when serving f over HTTP.
func (f Format) ContentType() string {
	switch f {
	case JSON:
		return "application/json"
	case SQLite:
		return "application/vnd.sqlite3"
	}
	return "text/csv; charset=utf-8"
}

type Table struct {
	Columns []string
	Records [][]string
}

func New(columns []string, records [][]string) *Table {
	return &Table{Columns: columns, Records: records}
}

// Encode streams t to w. SQLite has no stream form; use WriteFile.
func Encode(w io.Writer, f Format, t *Table) error {
	switch f {
	case CSV:
		return encodeCSV(w, t)
	case JSON:
		return encodeJSON(w, t)
	}
	return fmt.Errorf("%w: %q cannot be streamed", ErrUnknownFormat, f)
}

// WriteFile writes t to path, replacing whatever is there.
func WriteFile(path string, f Format, t *Table) error {
	if f == SQLite {
		return writeSQLite(path, t)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(out, f, t); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
