// Package extract pulls actionable items out of free-text check-in
// notes. Classification is regex-based and deliberately loose: a line
// either looks like a task (todo/checkbox/bullet markers) or like an
// event (a clock time or a meeting word), and everything else is left
// alone.
package extract

import (
	"regexp"
	"strings"
)

const (
	KindTask  = "task"
	KindEvent = "event"
)

// Item is one task or event lifted from a note. Raw keeps the original
// line so callers can show context; Title is cleaned for display.
type Item struct {
	Title string
	Kind  string
	Raw   string
}

var (
	taskRE       = regexp.MustCompile(`(?i)^(?:[-*]\s*)?(?:\[[ xX]\]|todo\s*[:\-]|task\s*[:\-])\s*(.+)$`)
	bulletTaskRE = regexp.MustCompile(`(?i)^[-*]\s+((?:buy|call|email|text|send|fix|clean|finish|schedule|book|pay|review|write|read|pick up|follow up)\b.*)$`)
	clockRE      = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\b|\b\d{1,2}\s*(?:am|pm)\b`)
	eventWordRE  = regexp.MustCompile(`(?i)\b(?:meet(?:ing)?|call|appointment|appt|standup|sync|interview|lunch|dinner|dentist|doctor)\b`)
	timeLeadRE   = regexp.MustCompile(`(?i)^(?:at\s+)?\d{1,2}(?::\d{2}\s*(?:am|pm)?\b|\s*(?:am|pm)\b)\s*[-:]*\s*`)
	bulletLeadRE = regexp.MustCompile(`^[-*]\s+`)
)

// Tasks returns the task-like lines of a note: "todo:"/"task:" prefixes,
// markdown checkboxes, and bullets opening with a common imperative.
func Tasks(note string) []Item {
	var items []Item
	for _, line := range strings.Split(note, "\n") {
		raw := strings.TrimSpace(line)
		if raw == "" {
			continue
		}
		var body string
		if m := taskRE.FindStringSubmatch(raw); m != nil {
			body = m[1]
		} else if m := bulletTaskRE.FindStringSubmatch(raw); m != nil {
			body = m[1]
		} else {
			continue
		}
		title := cleanTitle(body)
		if title == "" {
			continue
		}
		items = append(items, Item{Title: title, Kind: KindTask, Raw: raw})
	}
	return items
}

// Events returns the event-like lines of a note: anything carrying a
// clock time or a meeting keyword.
func Events(note string) []Item {
	var items []Item
	for _, line := range strings.Split(note, "\n") {
		raw := strings.TrimSpace(line)
		if raw == "" {
			continue
		}
		if !clockRE.MatchString(raw) && !eventWordRE.MatchString(raw) {
			continue
		}
		title := cleanTitle(bulletLeadRE.ReplaceAllString(raw, ""))
		if title == "" {
			continue
		}
		items = append(items, Item{Title: title, Kind: KindEvent, Raw: raw})
	}
	return items
}

// Scan classifies every line of a note, tasks first. A line claimed as
// a task is not reported again as an event, and the combined result is
// deduplicated by title.
func Scan(note string) []Item {
	tasks := Tasks(note)

	claimed := make(map[string]bool, len(tasks))
	for _, item := range tasks {
		claimed[item.Raw] = true
	}

	items := tasks
	for _, item := range Events(note) {
		if claimed[item.Raw] {
			continue
		}
		items = append(items, item)
	}
	return Dedupe(items)
}

// Dedupe removes items with duplicate titles, case-insensitively. The
// first occurrence wins.
func Dedupe(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, item := range items {
		key := strings.ToLower(item.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// cleanTitle strips a leading clock time ("3pm -", "at 14:30"), then
// trailing punctuation.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = timeLeadRE.ReplaceAllString(s, "")
	s = strings.TrimRight(strings.TrimSpace(s), ".,;:!")
	return strings.TrimSpace(s)
}
