package transcript

import "fmt"

type RowKind uint8

const (
	KindPause RowKind = iota
	KindTurn
	KindNote
)

func (k RowKind) String() string {
	switch k {
	case KindPause:
		return "pause"
	case KindTurn:
		return "turn"
	case KindNote:
		return "note"
	}
	return "unknown"
}

// Columns is the fixed column order of the flattened table.
var Columns = []string{
	"Row",
	"Begin",
	"End",
	"Task",
	"Interactional Segment",
	"Micro Task",
	"Sequence",
	"Transaction",
	"Participant",
	"Annotation",
	"Non Verbal Action",
	"Move Level 1",
	"Move Level 2",
	"Move Level 3",
}

// Structure holds the transversal columns shared by every row kind.
type Structure struct {
	Task                 string
	InteractionalSegment string
	MicroTask            string
	Sequence             string
	Transaction          string
}

type Row struct {
	Interval
	Structure
	Kind        RowKind
	Index       int // 1-based, assigned after sorting
	Participant string
	Annotation  string
	NonVerbal   string
	Move1       string
	Move2       string
	Move3       string
}

// Record renders the row in Columns order.
func (r Row) Record() []string {
	return []string{
		fmt.Sprint(r.Index),
		FormatMillis(r.Begin),
		FormatMillis(r.End),
		r.Task,
		r.InteractionalSegment,
		r.MicroTask,
		r.Sequence,
		r.Transaction,
		r.Participant,
		r.Annotation,
		r.NonVerbal,
		r.Move1,
		r.Move2,
		r.Move3,
	}
}

// FormatMillis renders ms as MM:SS.mmm. Minutes are unbounded, so an hour
// is "60:00.000".
func FormatMillis(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%s%02d:%02d.%03d", sign, minutes, seconds, millis)
}
