package orchestrator

import "github.com/NovantaCreativeTeam/pracsi-script/table"

// Request describes one conversion.
type Request struct {
	Source  string       // input name; its base names the output file
	Output  string       // file or directory; "" means a new session dir
	Format  table.Format // "" means the configured format
	Summary bool         // also write <name>.summary.json
}

type Result struct {
	SessionID   string       `json:"session_id,omitempty"`
	Output      string       `json:"output"`
	SummaryPath string       `json:"summary_path,omitempty"`
	Format      table.Format `json:"format"`
	Summary     Summary      `json:"summary"`
}

type Summary struct {
	Source       string `json:"source"`
	Rows         int    `json:"rows"`
	Turns        int    `json:"turns"`
	Pauses       int    `json:"pauses"`
	Notes        int    `json:"notes"`
	Dropped      int    `json:"dropped_references"`
	DurationMs   int64  `json:"duration_ms"`
	PauseTotalMs int64  `json:"pause_total_ms"`
	// Aggregates over speaker turns
	SpeakingMs    map[string]int64   `json:"speaking_ms,omitempty"`
	SpeakingShare map[string]float64 `json:"speaking_share,omitempty"` // per participant
	OverlapRate   float64            `json:"overlap_rate"`
}
