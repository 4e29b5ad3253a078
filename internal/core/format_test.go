package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kumar-509/voice-ai-frontend/internal/transport"
)

func TestFormatSearchResults_KeepsFirstThreeInOrder(t *testing.T) {
	results := []transport.SearchResult{
		{Title: "One", Snippet: "first"},
		{Title: "Two", Snippet: "second"},
		{Title: "Three", Snippet: "third"},
		{Title: "Four", Snippet: "fourth"},
		{Title: "Five", Snippet: "fifth"},
	}

	got := FormatSearchResults(results)

	assert.Equal(t, "Search Results:\n\n1. One\nfirst\n\n2. Two\nsecond\n\n3. Three\nthird", got)
}

func TestFormatSearchResults_Single(t *testing.T) {
	got := FormatSearchResults([]transport.SearchResult{{Title: "Go", Snippet: "gopher"}})
	assert.Equal(t, "Search Results:\n\n1. Go\ngopher", got)
}

func TestParseReminderTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	for _, raw := range []string{"2025-03-01 09:30", "2025-03-01T09:30", " 2025-03-01 09:30:00 "} {
		got, err := ParseReminderTime(raw, loc)
		require.NoError(t, err, raw)
		assert.Equal(t, "2025-03-01T07:30:00.000Z", ISOTimestamp(got), raw)
	}

	_, err := ParseReminderTime("tomorrow", loc)
	assert.Error(t, err)
	_, err = ParseReminderTime("", loc)
	assert.Error(t, err)
}

func TestISOTimestamp_Milliseconds(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 30, 0, 123456789, time.UTC)
	assert.Equal(t, "2025-03-01T09:30:00.123Z", ISOTimestamp(ts))
}
