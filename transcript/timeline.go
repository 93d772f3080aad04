package transcript

import "github.com/NovantaCreativeTeam/pracsi-script/eaf"

// Timeline maps time slot ids to milliseconds. Unaligned slots are absent.
type Timeline map[string]int64

func NewTimeline(slots []eaf.TimeSlot) Timeline {
	tl := make(Timeline, len(slots))
	for _, s := range slots {
		if !s.HasValue {
			continue
		}
		tl[s.ID] = s.Value
	}
	return tl
}

func (tl Timeline) Millis(id string) (int64, bool) {
	ms, ok := tl[id]
	return ms, ok
}
