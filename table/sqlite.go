package table

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// TableName is the table a SQLite export is written to.
const TableName = "transcript"

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeSQLite(path string, t *Table) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols := make([]string, len(t.Columns))
	defs := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quoteIdent(c)
		defs[i] = cols[i] + " TEXT"
		if i == 0 {
			defs[i] = cols[i] + " INTEGER PRIMARY KEY"
		}
		marks[i] = "?"
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + quoteIdent(TableName)); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf(`CREATE TABLE %s (%s)`,
		quoteIdent(TableName), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(TableName), strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range t.Records {
		if len(rec) != len(t.Columns) {
			return fmt.Errorf("row %d: %d fields, want %d", i+1, len(rec), len(t.Columns))
		}
		args := make([]any, len(rec))
		for j, v := range rec {
			args[j] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
