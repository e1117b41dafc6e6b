package datatable

import (
	"context"
	"strings"
)

// State is the phase of the render cycle.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateRendered State = "rendered"
)

// Feature names an optional part of the host page. A disabled feature turns
// the matching Manager operations into no-ops.
type Feature string

const (
	FeatureSearch       Feature = "search"
	FeatureStatusFilter Feature = "status_filter"
	FeatureDateRange    Feature = "date_range"
	FeatureEntries      Feature = "entries"
	FeatureSort         Feature = "sort"
	FeatureRowSelect    Feature = "row_select"
	FeatureSelectAll    Feature = "select_all"
	FeaturePagination   Feature = "pagination"
)

type Options struct {
	// Table identifies the listing in views and logs.
	Table        string
	ItemsPerPage int
	Schema       Schema
	Disabled     []Feature

	// OnDelete is called with the row ID, code and name when the delete
	// trigger of a visible row fires.
	OnDelete func(id int64, code, name string)
	// OnBulkAction is called once a bulk action has been confirmed, before
	// it is sent to the executor.
	OnBulkAction func(action BulkAction, ids []int64)
	// OnStateChange observes every transition of the render cycle.
	OnStateChange func(from, to State)
	// OnRender receives every view produced by the manager.
	OnRender func(View)
}

// Counters feed the "showing X to Y of Z" footer and the filter indicator.
type Counters struct {
	ShowingFrom     int  `json:"showing_from"`
	ShowingTo       int  `json:"showing_to"`
	TotalFiltered   int  `json:"total_entries"`
	TotalUnfiltered int  `json:"total_unfiltered"`
	SelectedCount   int  `json:"selected_count"`
	Filtered        bool `json:"filtered"`
}

// RenderedRow is a row of the current page with its selection state.
type RenderedRow struct {
	ID       int64          `json:"id"`
	Fields   map[string]any `json:"fields"`
	Snapshot string         `json:"snapshot,omitempty"`
	Selected bool           `json:"selected"`
}

// View is the complete output of one render cycle.
type View struct {
	Table       string        `json:"table"`
	State       State         `json:"state"`
	Rows        []RenderedRow `json:"rows"`
	Empty       bool          `json:"empty"`
	Controls    []PageControl `json:"controls,omitempty"`
	Pagination  Pagination    `json:"pagination"`
	TotalPages  int           `json:"total_pages"`
	Sort        SortState     `json:"sort"`
	Criteria    Criteria      `json:"criteria"`
	SelectAll   TriState      `json:"select_all"`
	BulkActions bool          `json:"bulk_actions"`
	Counters    Counters      `json:"counters"`
}

// Manager coordinates the store, filters, sort, pagination and selection of
// one table and produces a View after every state change.
type Manager struct {
	opts     Options
	disabled map[Feature]bool

	store     *Store
	selection *Selection

	criteria   Criteria
	sort       SortState
	pagination Pagination

	filtered []Row
	page     []Row
	state    State
	view     View
}

func NewManager(opts Options) *Manager {
	if opts.ItemsPerPage <= 0 {
		opts.ItemsPerPage = DefaultItemsPerPage
	}
	opts.Schema = opts.Schema.withDefaults()

	disabled := make(map[Feature]bool, len(opts.Disabled))
	for _, f := range opts.Disabled {
		disabled[f] = true
	}

	m := &Manager{
		opts:       opts,
		disabled:   disabled,
		store:      NewStore(),
		selection:  NewSelection(),
		sort:       SortState{Direction: Ascending},
		pagination: Pagination{CurrentPage: 1, ItemsPerPage: opts.ItemsPerPage},
		state:      StateIdle,
	}
	m.render(true)
	return m
}

// Load extracts the dataset from src and renders the first page.
func (m *Manager) Load(ctx context.Context, src Source) error {
	if err := m.store.Extract(ctx, src, m.opts.Schema.Columns); err != nil {
		return err
	}
	m.render(true)
	return nil
}

// Reload re-extracts the dataset from src, keeping filters, sort and
// selection, and returns to the first page.
func (m *Manager) Reload(ctx context.Context, src Source) error {
	return m.Load(ctx, src)
}

// ApplyFilters replaces the filter criteria and returns to the first page.
// Criteria belonging to disabled features are dropped.
func (m *Manager) ApplyFilters(c Criteria) View {
	if m.disabled[FeatureSearch] {
		c.Search = ""
	}
	if m.disabled[FeatureStatusFilter] {
		c.Status = ""
	}
	if m.disabled[FeatureDateRange] {
		c.DateStart, c.DateEnd = "", ""
	}
	c.Search = strings.TrimSpace(c.Search)
	m.criteria = c
	return m.render(true)
}

// Search changes only the search term and reapplies all filters.
func (m *Manager) Search(term string) View {
	c := m.criteria
	c.Search = term
	return m.ApplyFilters(c)
}

// SortBy handles a click on a sortable column header.
func (m *Manager) SortBy(column string) View {
	if m.disabled[FeatureSort] || column == "" {
		return m.view
	}
	if c, ok := m.opts.Schema.Column(column); ok && !c.Sortable {
		return m.view
	}
	m.sort = m.sort.Toggle(column)
	return m.render(true)
}

// ChangePage moves to page. Requests outside [1, totalPages] are ignored.
func (m *Manager) ChangePage(page int) View {
	total := TotalPages(len(m.filtered), m.pagination.ItemsPerPage)
	if page < 1 || page > total {
		return m.view
	}
	m.pagination.CurrentPage = page
	return m.render(false)
}

// SetItemsPerPage changes the page size and returns to the first page.
// Non-positive sizes are ignored.
func (m *Manager) SetItemsPerPage(n int) View {
	if m.disabled[FeatureEntries] || n <= 0 {
		return m.view
	}
	m.pagination.ItemsPerPage = n
	return m.render(true)
}

// SelectRow sets the selection state of a row on the current page. Rows that
// are not visible cannot be toggled.
func (m *Manager) SelectRow(id int64, checked bool) View {
	if m.disabled[FeatureRowSelect] || !m.visible(id) {
		return m.view
	}
	m.selection.Set(id, checked)
	return m.render(false)
}

// ToggleRow flips the selection state of a visible row.
func (m *Manager) ToggleRow(id int64) View {
	return m.SelectRow(id, !m.selection.IsSelected(id))
}

// ToggleSelectAll applies the select-all control to the current page.
func (m *Manager) ToggleSelectAll(checked bool) View {
	if m.disabled[FeatureSelectAll] {
		return m.view
	}
	m.selection.ToggleAll(m.page, checked)
	return m.render(false)
}

// Delete fires the delete hook for a visible row and reports whether it did.
func (m *Manager) Delete(id int64) bool {
	if m.opts.OnDelete == nil || !m.visible(id) {
		return false
	}
	row, _ := m.store.Get(id)
	m.opts.OnDelete(row.ID, row.Text("code"), row.Text("name"))
	return true
}

func (m *Manager) View() View {
	return m.view
}

func (m *Manager) State() State {
	return m.state
}

func (m *Manager) Criteria() Criteria {
	return m.criteria
}

func (m *Manager) SortState() SortState {
	return m.sort
}

func (m *Manager) Pagination() Pagination {
	return m.pagination
}

// Selection exposes the selection set. It is shared with the manager.
func (m *Manager) Selection() *Selection {
	return m.selection
}

func (m *Manager) Schema() Schema {
	return m.opts.Schema
}

// Filtered returns the current filtered and sorted view.
func (m *Manager) Filtered() []Row {
	return m.filtered
}

func (m *Manager) visible(id int64) bool {
	for _, r := range m.page {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (m *Manager) setState(to State) {
	from := m.state
	m.state = to
	if m.opts.OnStateChange != nil && from != to {
		m.opts.OnStateChange(from, to)
	}
}

// render runs one full cycle: filter the complete dataset, sort, paginate,
// reconcile the select-all state and rebuild the counters.
func (m *Manager) render(resetPage bool) View {
	m.setState(StateLoading)

	view := Filter(m.store.All(), m.criteria, m.opts.Schema)
	if m.sort.Active() {
		view = Sort(view, m.sort, m.opts.Schema)
	}
	m.filtered = view

	if resetPage {
		m.pagination.CurrentPage = 1
	}
	m.pagination = m.pagination.clamp(len(view))

	page, controls := Paginate(view, m.pagination)
	if m.disabled[FeaturePagination] {
		controls = nil
	}
	m.page = page

	rows := make([]RenderedRow, 0, len(page))
	for _, r := range page {
		rows = append(rows, RenderedRow{
			ID:       r.ID,
			Fields:   r.Fields,
			Snapshot: r.Snapshot,
			Selected: m.selection.IsSelected(r.ID),
		})
	}

	counters := Counters{
		TotalFiltered:   len(view),
		TotalUnfiltered: m.store.Len(),
		SelectedCount:   m.selection.Count(),
		Filtered:        len(view) != m.store.Len(),
	}
	if len(view) > 0 {
		counters.ShowingFrom = (m.pagination.CurrentPage-1)*m.pagination.ItemsPerPage + 1
		counters.ShowingTo = min(m.pagination.CurrentPage*m.pagination.ItemsPerPage, len(view))
	}

	m.setState(StateRendered)

	m.view = View{
		Table:       m.opts.Table,
		State:       m.state,
		Rows:        rows,
		Empty:       len(rows) == 0,
		Controls:    controls,
		Pagination:  m.pagination,
		TotalPages:  TotalPages(len(view), m.pagination.ItemsPerPage),
		Sort:        m.sort,
		Criteria:    m.criteria,
		SelectAll:   m.selection.StateOf(page),
		BulkActions: m.selection.Count() > 0,
		Counters:    counters,
	}

	if m.opts.OnRender != nil {
		m.opts.OnRender(m.view)
	}
	return m.view
}
