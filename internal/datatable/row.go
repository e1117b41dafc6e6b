package datatable

import (
	"context"
	"fmt"
	"strconv"
)

// Kind tells the engine how a column is searched, filtered and compared.
type Kind string

const (
	KindString Kind = "string"
	KindEnum   Kind = "enum"
	KindNumber Kind = "number"
	KindDate   Kind = "date"
)

// Column declares one named field of a row.
type Column struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Sortable bool   `json:"sortable"`
}

// Row is one record of the dataset. Field values are strings or numbers;
// Snapshot is the pre-rendered form of the row and is never interpreted.
type Row struct {
	ID       int64          `json:"id"`
	Fields   map[string]any `json:"fields"`
	Snapshot string         `json:"snapshot,omitempty"`
}

// Text returns the string form of a field, or "" when the field is absent.
func (r Row) Text(field string) string {
	return textOf(r.Fields[field])
}

func (r Row) clone() Row {
	fields := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return Row{ID: r.ID, Fields: fields, Snapshot: r.Snapshot}
}

func textOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// Source produces the rows of a dataset. Implementations return a fresh
// snapshot on every call.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) ([]Row, error)

func (fn SourceFunc) Rows(ctx context.Context) ([]Row, error) {
	return fn(ctx)
}

// Schema describes the columns of a table and the fields used by the status
// and date-range filters.
type Schema struct {
	Columns     []Column
	DateField   string
	StatusField string
}

const (
	DefaultDateField   = "start_date"
	DefaultStatusField = "status"
)

func (s Schema) withDefaults() Schema {
	if s.DateField == "" {
		s.DateField = DefaultDateField
	}
	if s.StatusField == "" {
		s.StatusField = DefaultStatusField
	}
	return s
}

// Column looks up a declared column by name.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// kindOf returns the declared kind of field, inferring it from the value
// when the column is not declared.
func (s Schema) kindOf(field string, sample any) Kind {
	if c, ok := s.Column(field); ok && c.Kind != "" {
		return c.Kind
	}
	switch sample.(type) {
	case int, int64, uint, float64:
		return KindNumber
	default:
		return KindString
	}
}

// Store holds the immutable dataset extracted from a Source.
type Store struct {
	rows  []Row
	index map[int64]int
}

func NewStore() *Store {
	return &Store{index: make(map[int64]int)}
}

// Extract replaces the dataset with the rows produced by src. A nil source
// yields an empty dataset. Rows without a positive ID or with an ID already
// seen are skipped, and every declared column missing from a row is set to "".
// On error the previous dataset is kept.
func (s *Store) Extract(ctx context.Context, src Source, columns []Column) error {
	if src == nil {
		s.rows = nil
		s.index = make(map[int64]int)
		return nil
	}

	raw, err := src.Rows(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract rows: %w", err)
	}

	rows := make([]Row, 0, len(raw))
	index := make(map[int64]int, len(raw))
	for _, r := range raw {
		if r.ID <= 0 {
			continue
		}
		if _, dup := index[r.ID]; dup {
			continue
		}
		row := r.clone()
		for _, c := range columns {
			if _, ok := row.Fields[c.Name]; !ok {
				row.Fields[c.Name] = ""
			}
		}
		index[row.ID] = len(rows)
		rows = append(rows, row)
	}

	s.rows = rows
	s.index = index
	return nil
}

// All returns the dataset in extraction order. The slice must not be modified.
func (s *Store) All() []Row {
	return s.rows
}

func (s *Store) Get(id int64) (Row, bool) {
	i, ok := s.index[id]
	if !ok {
		return Row{}, false
	}
	return s.rows[i], true
}

func (s *Store) Len() int {
	return len(s.rows)
}
