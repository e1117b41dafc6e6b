package catalog

import (
	"context"
	"fmt"

	"github.com/mwantia/govportal/internal/datatable"
	"github.com/mwantia/govportal/pkg/db/store"
)

// Source loads every row of a table that is not soft-deleted, active and
// inactive alike.
type Source struct {
	store store.PortalStore
	table Table
}

var _ datatable.Source = (*Source)(nil)

func NewSource(s store.PortalStore, table Table) *Source {
	return &Source{store: s, table: table}
}

func (src *Source) Rows(ctx context.Context) ([]datatable.Row, error) {
	if src.table.load == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownTable, src.table.Name)
	}
	return src.table.load(ctx, src.store, src.table)
}

func loadProjects(ctx context.Context, s store.PortalStore, t Table) ([]datatable.Row, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	rows := make([]datatable.Row, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, projectRow(p, t))
	}
	return rows, nil
}

func loadDocuments(ctx context.Context, s store.PortalStore, t Table) ([]datatable.Row, error) {
	documents, err := s.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	rows := make([]datatable.Row, 0, len(documents))
	for _, d := range documents {
		rows = append(rows, documentRow(d, t))
	}
	return rows, nil
}

func loadFamilies(ctx context.Context, s store.PortalStore, t Table) ([]datatable.Row, error) {
	families, err := s.ListFamilies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}

	rows := make([]datatable.Row, 0, len(families))
	for _, f := range families {
		rows = append(rows, familyRow(f, t))
	}
	return rows, nil
}

// NewMarkupSource reads rows of table from markup rendered by the back
// office, such as a saved listing page. An empty container selects the
// default tbody id.
func NewMarkupSource(table Table, markup, container string) *datatable.MarkupSource {
	return &datatable.MarkupSource{
		Markup:    markup,
		Container: container,
		KeyAttr:   table.KeyAttr,
		Cells:     table.Cells,
	}
}
