package datatable

import (
	"context"
	"fmt"
)

var testSchema = Schema{
	Columns: []Column{
		{Name: "code", Kind: KindString, Sortable: true},
		{Name: "name", Kind: KindString, Sortable: true},
		{Name: "category", Kind: KindEnum, Sortable: true},
		{Name: "priority", Kind: KindEnum, Sortable: true},
		{Name: "status", Kind: KindEnum, Sortable: true},
		{Name: "responsible", Kind: KindString, Sortable: true},
		{Name: "budget", Kind: KindNumber, Sortable: true},
		{Name: "start_date", Kind: KindDate, Sortable: true},
		{Name: "created_at", Kind: KindDate, Sortable: true},
	},
}

// numberedRows returns n rows with IDs 1..n in order.
func numberedRows(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, Row{
			ID: int64(i),
			Fields: map[string]any{
				"code":   fmt.Sprintf("PRJ-%03d", i),
				"name":   fmt.Sprintf("Project %d", i),
				"status": "planning",
			},
		})
	}
	return rows
}

func staticSource(rows []Row) Source {
	return SourceFunc(func(context.Context) ([]Row, error) {
		return rows, nil
	})
}

func ids(rows []Row) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func viewIDs(v View) []int64 {
	out := make([]int64, 0, len(v.Rows))
	for _, r := range v.Rows {
		out = append(out, r.ID)
	}
	return out
}

func rangeIDs(from, to int64) []int64 {
	var out []int64
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func loadedManager(rows []Row, perPage int) *Manager {
	m := NewManager(Options{Table: "projects", ItemsPerPage: perPage, Schema: testSchema})
	if err := m.Load(context.Background(), staticSource(rows)); err != nil {
		panic(err)
	}
	return m
}
