// Package transcript flattens a tiered, time-anchored annotation document
// into one chronologically ordered table of speaker turns, pauses and notes.
//
// Tiers share a timeline but no identifiers, so everything is joined on
// intervals: transversal tiers by weak overlap, moves by alignment or
// nesting.
package transcript

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/NovantaCreativeTeam/pracsi-script/eaf"
)

type Result struct {
	Rows  []Row
	Model *Model
}

// Convert resolves doc and assembles its rows: pauses, then speaker turns,
// then notes, stable-sorted by start time and numbered from 1.
func Convert(doc *eaf.Document, l Layout, log logrus.FieldLogger) (*Result, error) {
	if log == nil {
		log = discardLogger()
	}
	m, err := Load(doc, NewTimeline(doc.TimeSlots), LoadOptions{
		ForwardReferences: l.ForwardReferences,
		Log:               log,
	})
	if err != nil {
		return nil, err
	}

	pauses := SynthesizePauses(m, l)
	turns := turnRows(m, l)
	notes := noteRows(m, l)

	rows := make([]Row, 0, len(pauses)+len(turns)+len(notes))
	rows = append(rows, pauses...)
	rows = append(rows, turns...)
	rows = append(rows, notes...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Begin < rows[j].Begin })
	for i := range rows {
		rows[i].Index = i + 1
	}

	log.WithFields(logrus.Fields{
		"tiers":   len(m.Tiers),
		"pauses":  len(pauses),
		"turns":   len(turns),
		"notes":   len(notes),
		"dropped": len(m.Dropped),
	}).Debug("transcript assembled")

	return &Result{Rows: rows, Model: m}, nil
}

func turnRows(m *Model, l Layout) []Row {
	var rows []Row
	for _, t := range m.Tiers {
		if t.Category != l.SpeakerCategory {
			continue
		}
		for _, a := range t.Annotations {
			rows = append(rows, Row{
				Interval:    a.Interval,
				Structure:   l.structure(m, a.Interval),
				Kind:        KindTurn,
				Participant: t.Participant,
				Annotation:  a.Value,
				NonVerbal:   m.Moves(l.NonVerbal, a.Interval, t.Participant),
				Move1:       m.Moves(l.MoveLevel1, a.Interval, t.Participant),
				Move2:       m.Moves(l.MoveLevel2, a.Interval, t.Participant),
				Move3:       m.Moves(l.MoveLevel3, a.Interval, t.Participant),
			})
		}
	}
	return rows
}

func noteRows(m *Model, l Layout) []Row {
	t, ok := m.Tier(l.NoteTier)
	if !ok {
		return nil
	}
	rows := make([]Row, 0, len(t.Annotations))
	for _, a := range t.Annotations {
		rows = append(rows, Row{
			Interval:    a.Interval,
			Structure:   l.structure(m, a.Interval),
			Kind:        KindNote,
			Participant: l.NoteParticipant,
			Annotation:  a.Value,
		})
	}
	return rows
}

// Records renders rows in Columns order.
func Records(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Record()
	}
	return out
}
