package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// storedObservation is the persisted layout with lenient field types, so
// one bad value costs one record instead of the whole slot.
type storedObservation struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
	IsPeakDay bool   `json:"isPeakDay"`
	Timestamp string `json:"timestamp"`
}

// SkippedRecordsError accompanies a partial decode: the records that
// decoded are returned with it, the rest are counted here.
type SkippedRecordsError struct {
	Skipped int
	First   error // first failure, for logs
}

func (e *SkippedRecordsError) Error() string {
	return fmt.Sprintf("%d stored observation(s) unreadable: %v", e.Skipped, e.First)
}

func (e *SkippedRecordsError) Unwrap() error { return e.First }

// DecodeObservations decodes a stored slot payload record by record.
// It fails only when the payload is not a JSON array. Records with an
// unparseable date or wrongly typed fields are skipped and reported in a
// *SkippedRecordsError returned next to the good ones. An unparseable
// timestamp is informational and is dropped rather than the record.
// The type is kept as stored; callers validate it.
func DecodeObservations(b []byte) ([]Observation, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make([]Observation, 0, len(raw))
	var skipped *SkippedRecordsError
	skip := func(err error) {
		if skipped == nil {
			skipped = &SkippedRecordsError{First: err}
		}
		skipped.Skipped++
	}
	for i, elem := range raw {
		var so storedObservation
		if err := json.Unmarshal(elem, &so); err != nil {
			skip(fmt.Errorf("record %d: %w", i, err))
			continue
		}
		d, err := ParseDate(so.Date)
		if err != nil {
			skip(fmt.Errorf("record %d: %w", i, err))
			continue
		}
		o := Observation{
			Date:      d,
			Type:      ObservationType(so.Type),
			Notes:     so.Notes,
			IsPeakDay: so.IsPeakDay,
		}
		if ts, err := time.Parse(time.RFC3339Nano, so.Timestamp); err == nil {
			o.Timestamp = ts
		}
		out = append(out, o)
	}
	if skipped != nil {
		return out, skipped
	}
	return out, nil
}
