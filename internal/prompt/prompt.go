// Package prompt holds the poem prompt templates and the date formats the
// tool presents to the model and the user.
package prompt

import (
	"fmt"
	"time"
)

// Default generation parameters applied when the caller overrides nothing.
const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7
)

// System is the default system message priming the model as a poet.
const System = "You are a skilled poet who creates beautiful, meaningful poems about dates."

const userTemplate = "Write a creative and thoughtful poem about the date %s. " +
	"The poem should reflect on the significance of this day, the season, " +
	"and perhaps historical events or cultural associations with this time of year."

// displayLayout renders dates the way the tool shows them, e.g. "May 23, 2025".
const displayLayout = "January 2, 2006"

// ForDate renders the user prompt asking for a poem about the given
// display-formatted date.
func ForDate(date string) string {
	return fmt.Sprintf(userTemplate, date)
}

// FormatDate renders t in the display form, e.g. "May 23, 2025".
func FormatDate(t time.Time) string {
	return t.Format(displayLayout)
}

// ParseDate accepts either the ISO form ("2025-05-23") or the display form
// ("May 23, 2025").
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", displayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want 2006-01-02 or \"May 23, 2025\")", s)
}
