// Package models defines data structures and domain types.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// MoodEntry represents a single mood observation: up to two bounded energy
// readings ("mind" and "body", 0-100) taken at one instant. Energies are
// pointers because an absent reading is not the same as a zero reading.
type MoodEntry struct {
	CreatedAt  time.Time `json:"createdAt"`
	ID         string    `json:"id"`
	MoodLabel  string    `json:"moodLabel,omitempty"`
	Note       string    `json:"note,omitempty"`
	Source     string    `json:"source,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	MindEnergy *float64  `json:"mindEnergy,omitempty"`
	BodyEnergy *float64  `json:"bodyEnergy,omitempty"`
}

// HasMind reports whether the entry carries a mind energy reading.
func (e *MoodEntry) HasMind() bool {
	return e.MindEnergy != nil
}

// HasBody reports whether the entry carries a body energy reading.
func (e *MoodEntry) HasBody() bool {
	return e.BodyEnergy != nil
}

// Clone returns a deep copy of the entry.
func (e *MoodEntry) Clone() MoodEntry {
	clone := MoodEntry{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		MoodLabel: e.MoodLabel,
		Note:      e.Note,
		Source:    e.Source,
	}

	if e.MindEnergy != nil {
		v := *e.MindEnergy
		clone.MindEnergy = &v
	}
	if e.BodyEnergy != nil {
		v := *e.BodyEnergy
		clone.BodyEnergy = &v
	}
	if e.Tags != nil {
		clone.Tags = make([]string, len(e.Tags))
		copy(clone.Tags, e.Tags)
	}

	return clone
}

// FloatPtr returns a pointer to v. Convenience for building optional energies.
func FloatPtr(v float64) *float64 {
	return &v
}

// EntryTimeError reports an entry whose createdAt value could not be parsed
// as an absolute instant.
type EntryTimeError struct {
	EntryID string
	Value   string
}

func (e *EntryTimeError) Error() string {
	return fmt.Sprintf("mood entry %q: unparseable createdAt value %q", e.EntryID, e.Value)
}

// RawEntryData represents the JSON structure of a check-in as companion
// tooling writes it. createdAt may be an ISO string or a Unix timestamp in
// seconds or milliseconds.
type RawEntryData struct {
	CreatedAt  json.RawMessage `json:"createdAt"`
	ID         string          `json:"id,omitempty"`
	MoodLabel  string          `json:"moodLabel,omitempty"`
	Note       string          `json:"note,omitempty"`
	Source     string          `json:"source,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	MindEnergy *float64        `json:"mindEnergy,omitempty"`
	BodyEnergy *float64        `json:"bodyEnergy,omitempty"`
}

// RawInboxFile represents the wrapped form of the check-in inbox file.
type RawInboxFile struct {
	Entries []RawEntryData `json:"entries"`
	Version int            `json:"version"`
}

// ToEntry converts RawEntryData to a MoodEntry, parsing the createdAt field.
// A missing or unparseable createdAt is a *EntryTimeError; the entry is
// rejected rather than coerced onto an arbitrary date.
func (r *RawEntryData) ToEntry() (MoodEntry, error) {
	entry := MoodEntry{
		ID:         r.ID,
		MoodLabel:  r.MoodLabel,
		Note:       r.Note,
		Source:     r.Source,
		MindEnergy: r.MindEnergy,
		BodyEnergy: r.BodyEnergy,
	}

	if r.Tags != nil {
		entry.Tags = make([]string, len(r.Tags))
		copy(entry.Tags, r.Tags)
	}

	t, err := parseTimeValue(r.CreatedAt)
	if err != nil || t.IsZero() {
		return MoodEntry{}, &EntryTimeError{EntryID: r.ID, Value: string(r.CreatedAt)}
	}
	entry.CreatedAt = t

	return entry, nil
}

// ToRaw converts the entry back to its wire form, with createdAt as an
// RFC 3339 string in UTC. ToEntry(ToRaw(e)) round-trips.
func (e *MoodEntry) ToRaw() RawEntryData {
	createdAt, _ := json.Marshal(e.CreatedAt.UTC().Format(time.RFC3339))

	raw := RawEntryData{
		CreatedAt:  createdAt,
		ID:         e.ID,
		MoodLabel:  e.MoodLabel,
		Note:       e.Note,
		Source:     e.Source,
		MindEnergy: e.MindEnergy,
		BodyEnergy: e.BodyEnergy,
	}

	if e.Tags != nil {
		raw.Tags = make([]string, len(e.Tags))
		copy(raw.Tags, e.Tags)
	}

	return raw
}

// parseTimeValue attempts to parse a JSON time value as either ISO string or
// Unix timestamp.
func parseTimeValue(data json.RawMessage) (time.Time, error) {
	if len(data) == 0 {
		return time.Time{}, fmt.Errorf("empty time value")
	}

	// Try as string first (ISO 8601)
	var strVal string
	if err := json.Unmarshal(data, &strVal); err == nil {
		if t, err := time.Parse(time.RFC3339, strVal); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339Nano, strVal); err == nil {
			return t, nil
		}
		if t, err := time.Parse("2006-01-02T15:04:05.000Z", strVal); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("unrecognized time string %q", strVal)
	}

	// Try as number (Unix timestamp in milliseconds or seconds)
	var numVal float64
	if err := json.Unmarshal(data, &numVal); err == nil {
		if numVal <= 0 {
			return time.Time{}, fmt.Errorf("non-positive unix timestamp %v", numVal)
		}
		if numVal > 1e12 {
			// Milliseconds
			return time.UnixMilli(int64(numVal)), nil
		}
		// Seconds
		return time.Unix(int64(numVal), 0), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized time value %s", data)
}
