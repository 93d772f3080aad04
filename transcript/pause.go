package transcript

import (
	"fmt"
	"sort"
)

// speakerTurns pools the annotations of every speaker tier in tier order.
func speakerTurns(m *Model, l Layout) []Annotation {
	var turns []Annotation
	for _, t := range m.Tiers {
		if t.Category == l.SpeakerCategory {
			turns = append(turns, t.Annotations...)
		}
	}
	return turns
}

// SynthesizePauses emits one row per silence between speaker turns,
// starting from time zero. Turns are visited by start time; the running end
// only grows, so overlapping turns never produce a pause.
func SynthesizePauses(m *Model, l Layout) []Row {
	turns := speakerTurns(m, l)
	sort.SliceStable(turns, func(i, j int) bool { return turns[i].Begin < turns[j].Begin })

	var rows []Row
	var prevEnd int64
	for _, a := range turns {
		if a.Begin > prevEnd {
			gap := Interval{Begin: prevEnd, End: a.Begin}
			rows = append(rows, Row{
				Interval:   gap,
				Structure:  l.structure(m, gap),
				Kind:       KindPause,
				Annotation: pauseLabel(gap.End - gap.Begin),
			})
		}
		if a.End > prevEnd {
			prevEnd = a.End
		}
	}
	return rows
}

func pauseLabel(ms int64) string {
	return fmt.Sprintf("(%.2f)", float64(ms)/1000)
}
