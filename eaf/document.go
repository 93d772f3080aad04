// Package eaf decodes ELAN annotation documents into raw declarations.
//
// Nothing here resolves intervals: time slots stay as declared and reference
// annotations keep only the id of their target. Resolution happens in the
// transcript package.
package eaf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrNotEAF = errors.New("not an ELAN annotation document")

// Document is the subset of an EAF file needed to flatten a transcript.
type Document struct {
	TimeSlots []TimeSlot
	Tiers     []Tier
}

// TimeSlot is a named point on the timeline. HasValue is false for
// unaligned slots, which carry no TIME_VALUE.
type TimeSlot struct {
	ID       string
	Value    int64
	HasValue bool
}

type Tier struct {
	ID          string
	Participant string
	Category    string // LINGUISTIC_TYPE_REF
	Parent      string
	Annotations []Annotation
}

// Annotation is either alignable (Slot1/Slot2 set) or a reference (Ref set).
type Annotation struct {
	ID    string
	Slot1 string
	Slot2 string
	Ref   string
	Value string
}

// IsRef reports whether the annotation inherits its interval from another one.
func (a Annotation) IsRef() bool { return a.Ref != "" }

type xmlDocument struct {
	XMLName   xml.Name      `xml:"ANNOTATION_DOCUMENT"`
	TimeOrder *xmlTimeOrder `xml:"TIME_ORDER"`
	Tiers     []xmlTier     `xml:"TIER"`
}

type xmlTimeOrder struct {
	Slots []xmlTimeSlot `xml:"TIME_SLOT"`
}

type xmlTimeSlot struct {
	ID    string `xml:"TIME_SLOT_ID,attr"`
	Value string `xml:"TIME_VALUE,attr"`
}

type xmlTier struct {
	ID          string          `xml:"TIER_ID,attr"`
	Participant string          `xml:"PARTICIPANT,attr"`
	Type        string          `xml:"LINGUISTIC_TYPE_REF,attr"`
	Parent      string          `xml:"PARENT_REF,attr"`
	Annotations []xmlAnnotation `xml:"ANNOTATION"`
}

type xmlAnnotation struct {
	Alignable *xmlAlignable `xml:"ALIGNABLE_ANNOTATION"`
	Reference *xmlReference `xml:"REF_ANNOTATION"`
}

type xmlAlignable struct {
	ID    string `xml:"ANNOTATION_ID,attr"`
	Slot1 string `xml:"TIME_SLOT_REF1,attr"`
	Slot2 string `xml:"TIME_SLOT_REF2,attr"`
	Value string `xml:"ANNOTATION_VALUE"`
}

type xmlReference struct {
	ID    string `xml:"ANNOTATION_ID,attr"`
	Ref   string `xml:"ANNOTATION_REF,attr"`
	Value string `xml:"ANNOTATION_VALUE"`
}

// Decode reads one EAF document. A TIME_VALUE that is present but not an
// integer is an error; an absent one leaves the slot unaligned.
func Decode(r io.Reader) (*Document, error) {
	var raw xmlDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		var unexpected xml.UnmarshalError
		if errors.As(err, &unexpected) {
			return nil, fmt.Errorf("%w: %v", ErrNotEAF, err)
		}
		return nil, fmt.Errorf("decode eaf: %w", err)
	}
	if raw.TimeOrder == nil {
		return nil, fmt.Errorf("%w: missing TIME_ORDER", ErrNotEAF)
	}

	doc := &Document{
		TimeSlots: make([]TimeSlot, 0, len(raw.TimeOrder.Slots)),
		Tiers:     make([]Tier, 0, len(raw.Tiers)),
	}
	for _, s := range raw.TimeOrder.Slots {
		ts := TimeSlot{ID: s.ID}
		if v := strings.TrimSpace(s.Value); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("time slot %s: bad TIME_VALUE %q: %w", s.ID, s.Value, err)
			}
			ts.Value = n
			ts.HasValue = true
		}
		doc.TimeSlots = append(doc.TimeSlots, ts)
	}

	for _, t := range raw.Tiers {
		tier := Tier{
			ID:          t.ID,
			Participant: t.Participant,
			Category:    t.Type,
			Parent:      t.Parent,
			Annotations: make([]Annotation, 0, len(t.Annotations)),
		}
		for _, a := range t.Annotations {
			switch {
			case a.Alignable != nil:
				tier.Annotations = append(tier.Annotations, Annotation{
					ID:    a.Alignable.ID,
					Slot1: a.Alignable.Slot1,
					Slot2: a.Alignable.Slot2,
					Value: a.Alignable.Value,
				})
			case a.Reference != nil:
				tier.Annotations = append(tier.Annotations, Annotation{
					ID:    a.Reference.ID,
					Ref:   a.Reference.Ref,
					Value: a.Reference.Value,
				})
			}
		}
		doc.Tiers = append(doc.Tiers, tier)
	}
	return doc, nil
}

// ParseFile opens and decodes the document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
