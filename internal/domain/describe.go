package domain

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout follows the shape of a browser Date string but prints the
// abbreviated zone name, e.g. "Tue Nov 14 2023 22:13:20 GMT+0000 (UTC)".
const DateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

const descriptionSeparator = "----"

// Description is the popup text for one earthquake. Place is kept verbatim;
// callers rendering into markup are responsible for escaping.
type Description struct {
	Place     string    `json:"place"`
	Time      time.Time `json:"time"`
	Magnitude float64   `json:"magnitude"`
	Depth     float64   `json:"depth"`
}

// Describe builds the description for a feature. The event time is converted
// to loc; a nil loc means the host's local zone.
func Describe(place string, timeMs int64, magnitude, depth float64, loc *time.Location) Description {
	if loc == nil {
		loc = time.Local
	}
	return Description{
		Place:     place,
		Time:      time.UnixMilli(timeMs).In(loc),
		Magnitude: magnitude,
		Depth:     depth,
	}
}

// Lines returns the description in display order: location, separator,
// date, magnitude, depth.
func (d Description) Lines() []string {
	return []string{
		"Location: " + d.Place,
		descriptionSeparator,
		"Date: " + d.Time.Format(DateLayout),
		"Magnitude: " + formatNumber(d.Magnitude),
		"Depth: " + formatNumber(d.Depth),
	}
}

func (d Description) String() string {
	return strings.Join(d.Lines(), "\n")
}

// formatNumber renders a float with the fewest digits that round-trip,
// so 4.2 stays "4.2" and 45 stays "45".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
