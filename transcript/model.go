package transcript

// Interval is a closed span in milliseconds. Begin <= End is not enforced;
// values are kept exactly as the source declares them.
type Interval struct {
	Begin int64
	End   int64
}

type Annotation struct {
	ID    string
	Value string
	Interval
}

type Tier struct {
	ID          string
	Participant string
	Category    string
	Annotations []Annotation // document order
}

// Model is the resolved, read-only view of one document. Every annotation in
// it has an interval; dropped references are not present.
type Model struct {
	Tiers   []Tier
	Dropped []string // ids of referential annotations that did not resolve

	byID map[string]int
}

func newModel(tiers []Tier, dropped []string) *Model {
	m := &Model{Tiers: tiers, Dropped: dropped, byID: make(map[string]int, len(tiers))}
	for i, t := range tiers {
		if _, dup := m.byID[t.ID]; !dup {
			m.byID[t.ID] = i
		}
	}
	return m
}

// Tier returns the first tier declared with the given id.
func (m *Model) Tier(id string) (*Tier, bool) {
	i, ok := m.byID[id]
	if !ok {
		return nil, false
	}
	return &m.Tiers[i], true
}
