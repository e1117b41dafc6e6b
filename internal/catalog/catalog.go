// Package catalog declares the back-office tables served by the datatable
// engine and binds them to the portal store.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/mwantia/govportal/internal/datatable"
	"github.com/mwantia/govportal/pkg/db/store"
)

var ErrUnknownTable = store.ErrUnknownTable

// Label is a bilingual display string.
type Label struct {
	FR string `json:"fr"`
	EN string `json:"en"`
}

// Table describes one catalog table: its column schema, the attribute that
// carries the primary key in rendered rows and how rows are loaded. Cells
// lists the fields rendered as <td> cells of a row, in order.
type Table struct {
	Name    string           `json:"name"`
	Label   Label            `json:"label"`
	Schema  datatable.Schema `json:"-"`
	KeyAttr string           `json:"key_attr"`
	Cells   []string         `json:"cells"`

	load func(ctx context.Context, s store.PortalStore, t Table) ([]datatable.Row, error)
}

func (t Table) Columns() []datatable.Column {
	return t.Schema.Columns
}

var tables = map[string]Table{
	store.TableProjects: {
		Name:    store.TableProjects,
		Label:   Label{FR: "Projets", EN: "Projects"},
		KeyAttr: "data-project-id",
		Cells:   []string{"code", "name", "category", "priority", "status", "responsible", "budget", "start_date", "active"},
		Schema: datatable.Schema{
			Columns: []datatable.Column{
				{Name: "code", Kind: datatable.KindString, Sortable: true},
				{Name: "name", Kind: datatable.KindString, Sortable: true},
				{Name: "category", Kind: datatable.KindEnum, Sortable: true},
				{Name: "priority", Kind: datatable.KindEnum, Sortable: true},
				{Name: "status", Kind: datatable.KindEnum, Sortable: true},
				{Name: "responsible", Kind: datatable.KindString, Sortable: true},
				{Name: "department", Kind: datatable.KindString, Sortable: true},
				{Name: "budget", Kind: datatable.KindNumber, Sortable: true},
				{Name: "start_date", Kind: datatable.KindDate, Sortable: true},
				{Name: "end_date", Kind: datatable.KindDate, Sortable: true},
				{Name: "active", Kind: datatable.KindEnum, Sortable: true},
				{Name: "created_at", Kind: datatable.KindDate, Sortable: true},
			},
			DateField:   "start_date",
			StatusField: "status",
		},
		load: loadProjects,
	},
	store.TableDocuments: {
		Name:    store.TableDocuments,
		Label:   Label{FR: "Documents", EN: "Documents"},
		KeyAttr: "data-document-id",
		Cells:   []string{"name", "family", "filename", "file_size", "status", "created_at"},
		Schema: datatable.Schema{
			Columns: []datatable.Column{
				{Name: "name", Kind: datatable.KindString, Sortable: true},
				{Name: "family", Kind: datatable.KindString, Sortable: true},
				{Name: "filename", Kind: datatable.KindString, Sortable: true},
				{Name: "mime_type", Kind: datatable.KindEnum, Sortable: true},
				{Name: "file_size", Kind: datatable.KindNumber, Sortable: true},
				{Name: "status", Kind: datatable.KindEnum, Sortable: true},
				{Name: "created_at", Kind: datatable.KindDate, Sortable: true},
			},
			DateField:   "created_at",
			StatusField: "status",
		},
		load: loadDocuments,
	},
	store.TableFamilies: {
		Name:    store.TableFamilies,
		Label:   Label{FR: "Familles", EN: "Families"},
		KeyAttr: "data-family-id",
		Cells:   []string{"code", "name", "display_order", "status", "created_at"},
		Schema: datatable.Schema{
			Columns: []datatable.Column{
				{Name: "code", Kind: datatable.KindString, Sortable: true},
				{Name: "name", Kind: datatable.KindString, Sortable: true},
				{Name: "icon", Kind: datatable.KindString, Sortable: false},
				{Name: "display_order", Kind: datatable.KindNumber, Sortable: true},
				{Name: "status", Kind: datatable.KindEnum, Sortable: true},
				{Name: "created_at", Kind: datatable.KindDate, Sortable: true},
			},
			DateField:   "created_at",
			StatusField: "status",
		},
		load: loadFamilies,
	},
}

// Lookup returns the table registered under name.
func Lookup(name string) (Table, error) {
	t, ok := tables[name]
	if !ok {
		return Table{}, fmt.Errorf("%w: '%s'", ErrUnknownTable, name)
	}
	return t, nil
}

// Names lists the registered tables in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
