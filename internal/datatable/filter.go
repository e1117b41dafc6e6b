package datatable

import (
	"strings"
	"time"
)

// Criteria is the full set of active filters. It is rebuilt from the UI on
// every filter event and always applied to the complete dataset.
type Criteria struct {
	Search    string            `json:"search"`
	Status    string            `json:"status"`
	DateStart string            `json:"date_start"`
	DateEnd   string            `json:"date_end"`
	Advanced  map[string]string `json:"advanced,omitempty"`
}

// IsZero reports whether no filter constrains the dataset.
func (c Criteria) IsZero() bool {
	if strings.TrimSpace(c.Search) != "" || c.Status != "" || c.DateStart != "" || c.DateEnd != "" {
		return false
	}
	for _, v := range c.Advanced {
		if v != "" {
			return false
		}
	}
	return true
}

// sentinelDate is the value used for missing or unparseable dates when sorting.
var sentinelDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseEndDate parses an upper bound. A bare date is moved to the last
// instant of that day.
func parseEndDate(value string) (time.Time, bool) {
	end, ok := parseDate(value)
	if !ok {
		return end, false
	}
	if _, err := time.Parse(dateLayouts[0], strings.TrimSpace(value)); err == nil {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return end, true
}

// Filter returns the rows of dataset that pass every criterion, in dataset
// order. The dataset itself is not modified.
//
// A bound that cannot be parsed as a date, and a row date that cannot be
// parsed, impose no constraint on the date axis. A date-only upper bound
// covers the whole day, so "2024-03-01" keeps "2024-03-01 17:30:00".
func Filter(dataset []Row, c Criteria, schema Schema) []Row {
	schema = schema.withDefaults()

	term := strings.ToLower(strings.TrimSpace(c.Search))
	start, hasStart := parseDate(c.DateStart)
	end, hasEnd := parseEndDate(c.DateEnd)

	out := make([]Row, 0, len(dataset))
	for _, row := range dataset {
		if term != "" && !matchSearch(row, term) {
			continue
		}
		if c.Status != "" && row.Text(schema.StatusField) != c.Status {
			continue
		}
		if (hasStart || hasEnd) && !matchDateRange(row.Text(schema.DateField), start, hasStart, end, hasEnd) {
			continue
		}
		if !matchAdvanced(row, c.Advanced, schema) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchSearch(row Row, term string) bool {
	for _, v := range row.Fields {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func matchDateRange(value string, start time.Time, hasStart bool, end time.Time, hasEnd bool) bool {
	if value == "" {
		return true
	}
	d, ok := parseDate(value)
	if !ok {
		return true
	}
	if hasStart && d.Before(start) {
		return false
	}
	if hasEnd && d.After(end) {
		return false
	}
	return true
}

func matchAdvanced(row Row, advanced map[string]string, schema Schema) bool {
	for field, want := range advanced {
		if want == "" {
			continue
		}
		value := row.Fields[field]
		got := textOf(value)
		switch schema.kindOf(field, value) {
		case KindString:
			if !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
				return false
			}
		default:
			if got != want {
				return false
			}
		}
	}
	return true
}

func sortDate(value string) time.Time {
	if d, ok := parseDate(value); ok {
		return d
	}
	return sentinelDate
}
