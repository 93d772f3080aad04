package transcript

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/NovantaCreativeTeam/pracsi-script/eaf"
)

// LoadOptions controls reference resolution.
type LoadOptions struct {
	// ForwardReferences lets a reference annotation resolve against any
	// annotation in the document. When false only targets declared before
	// the reference (earlier tiers, or earlier in the same tier) count.
	ForwardReferences bool
	Log               logrus.FieldLogger
}

type resolveState uint8

const (
	unresolved resolveState = iota
	visiting
	resolved
	dropped
)

// decl is one annotation declaration in document order.
type decl struct {
	tier  int
	pos   int
	raw   eaf.Annotation
	span  Interval
	state resolveState
	cycle bool
}

func (d *decl) before(o *decl) bool {
	if d.tier != o.tier {
		return d.tier < o.tier
	}
	return d.pos < o.pos
}

type loader struct {
	opts  LoadOptions
	decls []*decl
	byID  map[string][]*decl
}

// Load resolves every annotation of doc to an interval. Alignable
// annotations read their slots from tl; a missing slot aborts with a
// *TimelineError. Reference annotations copy the interval of their target,
// following chains; those whose target cannot be found, or that sit on a
// reference cycle, are dropped.
func Load(doc *eaf.Document, tl Timeline, opts LoadOptions) (*Model, error) {
	if opts.Log == nil {
		opts.Log = discardLogger()
	}
	l := &loader{opts: opts, byID: map[string][]*decl{}}

	// pass 1: collect declarations, anchoring alignable ones directly
	for ti, t := range doc.Tiers {
		for ai, a := range t.Annotations {
			d := &decl{tier: ti, pos: ai, raw: a}
			if !a.IsRef() {
				b, ok := tl.Millis(a.Slot1)
				if !ok {
					return nil, &TimelineError{Tier: t.ID, Annotation: a.ID, Slot: a.Slot1}
				}
				e, ok := tl.Millis(a.Slot2)
				if !ok {
					return nil, &TimelineError{Tier: t.ID, Annotation: a.ID, Slot: a.Slot2}
				}
				d.span = Interval{Begin: b, End: e}
				d.state = resolved
			}
			l.decls = append(l.decls, d)
			if a.ID != "" {
				l.byID[a.ID] = append(l.byID[a.ID], d)
			}
		}
	}

	// pass 2: resolve references
	for _, d := range l.decls {
		l.resolve(d)
	}

	tiers := make([]Tier, len(doc.Tiers))
	for i, t := range doc.Tiers {
		tiers[i] = Tier{ID: t.ID, Participant: t.Participant, Category: t.Category}
	}
	var droppedIDs []string
	for _, d := range l.decls {
		if d.state != resolved {
			droppedIDs = append(droppedIDs, d.raw.ID)
			entry := opts.Log.WithFields(logrus.Fields{
				"tier":       doc.Tiers[d.tier].ID,
				"annotation": d.raw.ID,
				"ref":        d.raw.Ref,
			})
			if d.cycle {
				entry.Warn("dropping annotation behind a reference cycle")
			} else {
				entry.Debug("dropping unresolved reference annotation")
			}
			continue
		}
		tiers[d.tier].Annotations = append(tiers[d.tier].Annotations, Annotation{
			ID:       d.raw.ID,
			Value:    d.raw.Value,
			Interval: d.span,
		})
	}
	return newModel(tiers, droppedIDs), nil
}

func (l *loader) resolve(d *decl) bool {
	switch d.state {
	case resolved:
		return true
	case dropped:
		return false
	case visiting:
		d.cycle = true
		return false
	}

	d.state = visiting
	for _, target := range l.byID[d.raw.Ref] {
		if target == d {
			d.cycle = true
			continue
		}
		if !l.opts.ForwardReferences && !target.before(d) {
			continue
		}
		if l.resolve(target) {
			d.span = target.span
			d.state = resolved
			return true
		}
		if target.cycle {
			d.cycle = true
		}
	}
	d.state = dropped
	return false
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
