package orchestrator

import (
	"sort"

	"github.com/NovantaCreativeTeam/pracsi-script/transcript"
)

func summarize(source string, rows []transcript.Row, dropped int) Summary {
	s := Summary{Source: source, Rows: len(rows), Dropped: dropped}
	if len(rows) == 0 {
		return s
	}

	type edge struct {
		t     int64
		delta int
	}
	var edges []edge
	var total int64
	start, end := rows[0].Begin, rows[0].End
	for _, r := range rows {
		if r.Begin < start {
			start = r.Begin
		}
		if r.End > end {
			end = r.End
		}
		switch r.Kind {
		case transcript.KindPause:
			s.Pauses++
			s.PauseTotalMs += r.End - r.Begin
		case transcript.KindNote:
			s.Notes++
		case transcript.KindTurn:
			s.Turns++
			d := r.End - r.Begin
			if d < 0 {
				d = 0
			}
			if s.SpeakingMs == nil {
				s.SpeakingMs = make(map[string]int64, 4)
			}
			s.SpeakingMs[r.Participant] += d
			total += d
			edges = append(edges, edge{t: r.Begin, delta: +1}, edge{t: r.End, delta: -1})
		}
	}
	s.DurationMs = end - start

	if total > 0 {
		s.SpeakingShare = make(map[string]float64, len(s.SpeakingMs))
		for k, v := range s.SpeakingMs {
			s.SpeakingShare[k] = float64(v) / float64(total)
		}
	}

	// time with two or more speakers active, over the whole span
	if len(edges) == 0 || s.DurationMs <= 0 {
		return s
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].t != edges[j].t {
			return edges[i].t < edges[j].t
		}
		return edges[i].delta < edges[j].delta
	})
	active := 0
	last := edges[0].t
	var overlap int64
	for _, e := range edges {
		if active > 1 {
			overlap += e.t - last
		}
		active += e.delta
		last = e.t
	}
	s.OverlapRate = float64(overlap) / float64(s.DurationMs)
	return s
}
