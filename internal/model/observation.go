package model

import (
	"strings"
	"time"
)

// ObservationType is the mucus or bleeding category of one observation.
type ObservationType string

const (
	Dry          ObservationType = "dry"
	Sticky       ObservationType = "sticky"
	Creamy       ObservationType = "creamy"
	Clear        ObservationType = "clear"
	Menstruation ObservationType = "menstruation"
	Spotting     ObservationType = "spotting"
)

// entry-form order
var allTypes = []ObservationType{Dry, Sticky, Creamy, Clear, Menstruation, Spotting}

var typeLabels = map[ObservationType]string{
	Dry:          "Dry",
	Sticky:       "Sticky",
	Creamy:       "Creamy",
	Clear:        "Clear/Stretchy",
	Menstruation: "Menstruation",
	Spotting:     "Spotting",
}

var typeDescriptions = map[ObservationType]string{
	Dry:          "No mucus discharge observed",
	Sticky:       "Thick, tacky, or pasty mucus",
	Creamy:       "Smooth, lotion-like mucus",
	Clear:        "Clear, stretchy, or lubricative mucus",
	Menstruation: "Menstrual bleeding",
	Spotting:     "Light bleeding or brown discharge",
}

var typeSymbols = map[ObservationType]string{
	Dry:          "○",
	Sticky:       "◐",
	Creamy:       "◑",
	Clear:        "●",
	Menstruation: "■",
	Spotting:     "▪",
}

// AllTypes returns every observation type in entry-form order.
func AllTypes() []ObservationType {
	out := make([]ObservationType, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseObservationType accepts any casing and surrounding space.
func ParseObservationType(s string) (ObservationType, error) {
	t := ObservationType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &InvalidObservationTypeError{Value: s}
	}
	return t, nil
}

func (t ObservationType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// PeakEligible reports whether a Peak Day flag means anything on this type.
func (t ObservationType) PeakEligible() bool { return t == Clear || t == Creamy }

func (t ObservationType) Label() string       { return typeLabels[t] }
func (t ObservationType) Description() string { return typeDescriptions[t] }
func (t ObservationType) Symbol() string      { return typeSymbols[t] }
func (t ObservationType) String() string      { return string(t) }

func typeNames() string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Observation is one dated fertility sign. Date is the natural key.
type Observation struct {
	Date      Date            `json:"date"`
	Type      ObservationType `json:"type"`
	Notes     string          `json:"notes"`
	IsPeakDay bool            `json:"isPeakDay"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewObservation builds a validated observation from raw input.
// The timestamp is informational and set to now.
func NewObservation(date, typ, notes string, peak bool, now time.Time) (Observation, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Observation{}, err
	}
	t, err := ParseObservationType(typ)
	if err != nil {
		return Observation{}, err
	}
	if peak && !t.PeakEligible() {
		return Observation{}, ErrPeakNotEligible
	}
	return Observation{
		Date:      d,
		Type:      t,
		Notes:     strings.TrimSpace(notes),
		IsPeakDay: peak,
		Timestamp: now.UTC(),
	}, nil
}

// Validate checks the fields the store relies on: a real date and a type
// from the closed set. Notes and the Peak flag pass through.
func (o Observation) Validate() error {
	if o.Date.IsZero() {
		return &InvalidDateError{Value: ""}
	}
	if !o.Type.Valid() {
		return &InvalidObservationTypeError{Value: string(o.Type)}
	}
	return nil
}
