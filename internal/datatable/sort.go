package datatable

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState is the active sort column and its direction.
// An empty Column means the view keeps dataset order.
type SortState struct {
	Column    string    `json:"column,omitempty"`
	Direction Direction `json:"direction"`
}

func (s SortState) Active() bool {
	return s.Column != ""
}

// Toggle returns the state after a click on column: the active column flips
// direction, any other column becomes active in ascending order.
func (s SortState) Toggle(column string) SortState {
	if s.Column == column {
		if s.Direction == Ascending {
			return SortState{Column: column, Direction: Descending}
		}
		return SortState{Column: column, Direction: Ascending}
	}
	return SortState{Column: column, Direction: Ascending}
}

// Sort returns a stably sorted copy of view. Rows with equal keys keep their
// relative order. Missing values sort as the earliest possible value.
func Sort(view []Row, state SortState, schema Schema) []Row {
	out := slices.Clone(view)
	if !state.Active() {
		return out
	}

	var sample any
	for _, r := range view {
		if v, ok := r.Fields[state.Column]; ok && v != "" {
			sample = v
			break
		}
	}
	compare := comparator(schema.kindOf(state.Column, sample), state.Column)

	slices.SortStableFunc(out, func(a, b Row) int {
		c := compare(a, b)
		if state.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}

func comparator(kind Kind, column string) func(a, b Row) int {
	switch kind {
	case KindDate:
		return func(a, b Row) int {
			return sortDate(a.Text(column)).Compare(sortDate(b.Text(column)))
		}
	case KindNumber:
		return func(a, b Row) int {
			x, y := sortNumber(a.Fields[column]), sortNumber(b.Fields[column])
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	default:
		return func(a, b Row) int {
			return strings.Compare(strings.ToLower(a.Text(column)), strings.ToLower(b.Text(column)))
		}
	}
}

func sortNumber(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return math.Inf(-1)
}
