package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NovantaCreativeTeam/pracsi-script/transcript"
)

func row(kind transcript.RowKind, who string, begin, end int64) transcript.Row {
	return transcript.Row{Kind: kind, Participant: who, Interval: transcript.Interval{Begin: begin, End: end}}
}

func TestSummarize(t *testing.T) {
	rows := []transcript.Row{
		row(transcript.KindTurn, "Anna", 0, 1000),
		row(transcript.KindTurn, "Bruno", 500, 1500),
		row(transcript.KindPause, "", 1500, 2000),
		row(transcript.KindTurn, "Anna", 2000, 2500),
		row(transcript.KindNote, "Note", 2100, 2200),
	}
	s := summarize("x.eaf", rows, 2)

	assert.Equal(t, "x.eaf", s.Source)
	assert.Equal(t, 5, s.Rows)
	assert.Equal(t, 3, s.Turns)
	assert.Equal(t, 1, s.Pauses)
	assert.Equal(t, 1, s.Notes)
	assert.Equal(t, 2, s.Dropped)
	assert.Equal(t, int64(2500), s.DurationMs)
	assert.Equal(t, int64(500), s.PauseTotalMs)
	assert.Equal(t, map[string]int64{"Anna": 1500, "Bruno": 1000}, s.SpeakingMs)
	assert.InDelta(t, 0.6, s.SpeakingShare["Anna"], 1e-9)
	assert.InDelta(t, 0.4, s.SpeakingShare["Bruno"], 1e-9)
	assert.InDelta(t, 500.0/2500.0, s.OverlapRate, 1e-9)
}

func TestSummarize_TouchingTurnsDoNotOverlap(t *testing.T) {
	s := summarize("x", []transcript.Row{
		row(transcript.KindTurn, "Anna", 0, 1000),
		row(transcript.KindTurn, "Bruno", 1000, 2000),
	}, 0)
	assert.Zero(t, s.OverlapRate)
}

func TestSummarize_Empty(t *testing.T) {
	s := summarize("x", nil, 0)
	assert.Zero(t, s.Rows)
	assert.Nil(t, s.SpeakingShare)
}
