package transcript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NovantaCreativeTeam/pracsi-script/eaf"
)

// al builds an alignable annotation whose slots are named after their value
// ("t1500" is 1500ms); newDoc declares those slots.
func al(id string, begin, end int64, value string) eaf.Annotation {
	return eaf.Annotation{
		ID:    id,
		Slot1: fmt.Sprintf("t%d", begin),
		Slot2: fmt.Sprintf("t%d", end),
		Value: value,
	}
}

func ref(id, target, value string) eaf.Annotation {
	return eaf.Annotation{ID: id, Ref: target, Value: value}
}

func tier(id, participant, category string, anns ...eaf.Annotation) eaf.Tier {
	return eaf.Tier{ID: id, Participant: participant, Category: category, Annotations: anns}
}

func newDoc(tiers ...eaf.Tier) *eaf.Document {
	doc := &eaf.Document{Tiers: tiers}
	seen := map[string]bool{}
	for _, t := range tiers {
		for _, a := range t.Annotations {
			for _, s := range []string{a.Slot1, a.Slot2} {
				if s == "" || seen[s] {
					continue
				}
				seen[s] = true
				v, err := strconv.ParseInt(strings.TrimPrefix(s, "t"), 10, 64)
				if err != nil {
					panic(err)
				}
				doc.TimeSlots = append(doc.TimeSlots, eaf.TimeSlot{ID: s, Value: v, HasValue: true})
			}
		}
	}
	return doc
}

func mustLoad(doc *eaf.Document, forward bool) *Model {
	m, err := Load(doc, NewTimeline(doc.TimeSlots), LoadOptions{ForwardReferences: forward})
	if err != nil {
		panic(err)
	}
	return m
}

func ids(t Tier) []string {
	out := make([]string, 0, len(t.Annotations))
	for _, a := range t.Annotations {
		out = append(out, a.ID)
	}
	return out
}
