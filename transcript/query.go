package transcript

import (
	"strconv"
	"strings"
)

// WeakOverlap reports any intersection of a and q, touching endpoints
// included.
func WeakOverlap(a, q Interval) bool {
	return !(a.End < q.Begin || a.Begin > q.End)
}

// AlignedOrNested is narrower than WeakOverlap: a must share an endpoint
// with q or one must contain the other. A partial overlap such as
// a=[150,250] q=[100,200] does not qualify.
func AlignedOrNested(a, q Interval) bool {
	return a.Begin == q.Begin ||
		a.End == q.End ||
		(a.Begin >= q.Begin && a.End <= q.End) ||
		(a.Begin <= q.Begin && a.End >= q.End)
}

// Transversal returns the value of the first annotation, in document order,
// of tier tierID that weakly overlaps q. Segmentation tiers often leave
// values blank; in that case the annotation's 1-based position in the tier
// is returned as its label. A missing tier or no overlap yields "".
func (m *Model) Transversal(tierID string, q Interval) string {
	t, ok := m.Tier(tierID)
	if !ok {
		return ""
	}
	for i, a := range t.Annotations {
		if !WeakOverlap(a.Interval, q) {
			continue
		}
		if strings.TrimSpace(a.Value) != "" {
			return a.Value
		}
		return strconv.Itoa(i + 1)
	}
	return ""
}

// Moves joins, with ", ", the values of every annotation on tiers of the
// given category and participant that is aligned with or nested in q.
// Tier order, then annotation order, is preserved.
func (m *Model) Moves(category string, q Interval, participant string) string {
	var vals []string
	for _, t := range m.Tiers {
		if t.Category != category || t.Participant != participant {
			continue
		}
		for _, a := range t.Annotations {
			if AlignedOrNested(a.Interval, q) {
				vals = append(vals, a.Value)
			}
		}
	}
	return strings.Join(vals, ", ")
}
