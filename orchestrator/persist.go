package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NovantaCreativeTeam/pracsi-script/table"
)

func mkSessionDir(outputsRoot string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	sid := "session_" + ts
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("make session dir: %w", err)
	}
	return sid, dir, nil
}

// outputPath picks the destination for source. out may be a file, an
// existing directory, or empty for a fresh session directory.
func outputPath(outputsRoot, source, out string, f table.Format) (sessionID, path string, err error) {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "transcript"
	}
	name := base + f.Extension()

	if out == "" {
		sid, dir, err := mkSessionDir(outputsRoot)
		if err != nil {
			return "", "", err
		}
		return sid, filepath.Join(dir, name), nil
	}
	if st, err := os.Stat(out); err == nil && st.IsDir() {
		return "", filepath.Join(out, name), nil
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", "", fmt.Errorf("make output dir: %w", err)
	}
	return "", out, nil
}

func summaryPath(tablePath string) string {
	return strings.TrimSuffix(tablePath, filepath.Ext(tablePath)) + ".summary.json"
}

// atomicWrite lets write fill a temp file next to path and renames it into
// place only if write succeeds, so a failed conversion leaves no artifact.
func atomicWrite(path string, write func(tmp string) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp %s: %w", filepath.Base(path), err)
	}
	if err := write(tmpName); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeTable(path string, f table.Format, t *table.Table) error {
	return atomicWrite(path, func(tmp string) error {
		if err := table.WriteFile(tmp, f, t); err != nil {
			return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
		}
		return nil
	})
}

func writeJSON(path string, v any) error {
	return atomicWrite(path, func(tmp string) error {
		f, err := os.Create(tmp)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
		}
		return f.Close()
	})
}
