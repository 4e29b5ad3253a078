package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/Kumar-509/voice-ai-frontend/internal/transport"
)

// MaxSearchResults is how many search hits are shown.
const MaxSearchResults = 3

// ISOLayout matches the millisecond UTC timestamps the backend expects.
const ISOLayout = "2006-01-02T15:04:05.000Z"

var reminderLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// FormatSearchResults renders the first MaxSearchResults hits as numbered entries.
func FormatSearchResults(results []transport.SearchResult) string {
	n := min(len(results), MaxSearchResults)
	entries := make([]string, 0, n)
	for i, r := range results[:n] {
		entries = append(entries, fmt.Sprintf("%d. %s\n%s", i+1, r.Title, r.Snippet))
	}
	return "Search Results:\n\n" + strings.Join(entries, "\n\n")
}

// ParseReminderTime reads a wall-clock date/time typed by the user in loc.
func ParseReminderTime(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range reminderLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid reminder time %q: want YYYY-MM-DD HH:MM", raw)
}

// ISOTimestamp normalizes t to UTC with millisecond precision.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}
