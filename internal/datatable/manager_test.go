package datatable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_PagesAndIgnoresOutOfRange(t *testing.T) {
	m := loadedManager(numberedRows(30), 10)

	v := m.ChangePage(1)
	assert.Equal(t, rangeIDs(1, 10), viewIDs(v))
	assert.Equal(t, 1, v.Counters.ShowingFrom)
	assert.Equal(t, 10, v.Counters.ShowingTo)
	assert.Equal(t, 30, v.Counters.TotalFiltered)
	assert.Equal(t, 3, v.TotalPages)

	v = m.ChangePage(4)
	assert.Equal(t, rangeIDs(1, 10), viewIDs(v))
	assert.Equal(t, 1, m.Pagination().CurrentPage)

	v = m.ChangePage(0)
	assert.Equal(t, 1, v.Pagination.CurrentPage)

	v = m.ChangePage(3)
	assert.Equal(t, rangeIDs(21, 30), viewIDs(v))
	assert.Equal(t, 21, v.Counters.ShowingFrom)
	assert.Equal(t, 30, v.Counters.ShowingTo)
}

func TestManager_DefaultItemsPerPage(t *testing.T) {
	m := loadedManager(numberedRows(30), 0)

	v := m.View()
	assert.Equal(t, DefaultItemsPerPage, v.Pagination.ItemsPerPage)
	assert.Len(t, v.Rows, 25)
}

func TestManager_FilterAndSortResetPage(t *testing.T) {
	m := loadedManager(numberedRows(30), 10)

	m.ChangePage(3)
	v := m.Search("project")
	assert.Equal(t, 1, v.Pagination.CurrentPage)

	m.ChangePage(2)
	v = m.SortBy("code")
	assert.Equal(t, 1, v.Pagination.CurrentPage)

	m.ChangePage(2)
	v = m.SetItemsPerPage(5)
	assert.Equal(t, 1, v.Pagination.CurrentPage)
	assert.Equal(t, 6, v.TotalPages)
}

func TestManager_SelectionKeepsPage(t *testing.T) {
	m := loadedManager(numberedRows(30), 10)

	m.ChangePage(2)
	v := m.SelectRow(15, true)

	assert.Equal(t, 2, v.Pagination.CurrentPage)
	assert.Equal(t, 1, v.Counters.SelectedCount)
	assert.True(t, v.BulkActions)
	assert.Equal(t, Indeterminate, v.SelectAll)
}

func TestManager_SelectionSurvivesFilters(t *testing.T) {
	m := loadedManager(numberedRows(30), 10)

	m.SelectRow(7, true)
	v := m.Search("Project 2")
	assert.NotContains(t, viewIDs(v), int64(7))
	assert.True(t, m.Selection().IsSelected(7))

	v = m.Search("")
	assert.True(t, m.Selection().IsSelected(7))
	for _, r := range v.Rows {
		assert.Equal(t, r.ID == 7, r.Selected, "row %d", r.ID)
	}
}

func TestManager_SelectRowIgnoresHiddenRows(t *testing.T) {
	m := loadedManager(numberedRows(30), 10)

	v := m.SelectRow(25, true)

	assert.Equal(t, 0, v.Counters.SelectedCount)
	assert.False(t, m.Selection().IsSelected(25))
}

func TestManager_SelectAllTriState(t *testing.T) {
	m := loadedManager(numberedRows(30), 10)

	v := m.ToggleSelectAll(true)
	assert.Equal(t, Checked, v.SelectAll)
	assert.Equal(t, 10, v.Counters.SelectedCount)

	v = m.ToggleRow(4)
	assert.Equal(t, Indeterminate, v.SelectAll)

	for id := int64(1); id <= 10; id++ {
		v = m.SelectRow(id, false)
	}
	assert.Equal(t, Unchecked, v.SelectAll)

	m.ToggleSelectAll(true)
	v = m.ChangePage(2)
	assert.Equal(t, Unchecked, v.SelectAll)
	assert.Equal(t, 10, v.Counters.SelectedCount)
}

func TestManager_FilteredCounters(t *testing.T) {
	m := loadedManager(numberedRows(30), 10)

	v := m.ApplyFilters(Criteria{Search: "Project 1"})

	// "Project 1" and "Project 10" to "Project 19"
	assert.Equal(t, 11, v.Counters.TotalFiltered)
	assert.Equal(t, 30, v.Counters.TotalUnfiltered)
	assert.True(t, v.Counters.Filtered)

	v = m.ApplyFilters(Criteria{Search: "nothing matches"})
	assert.True(t, v.Empty)
	assert.Equal(t, 0, v.Counters.ShowingFrom)
	assert.Equal(t, 0, v.Counters.ShowingTo)
	assert.Nil(t, v.Controls)
}

func TestManager_SortToggleAndReapplyAfterFilter(t *testing.T) {
	m := loadedManager(numberedRows(12), 5)

	m.SortBy("code")
	v := m.SortBy("code")
	assert.Equal(t, SortState{Column: "code", Direction: Descending}, v.Sort)
	assert.Equal(t, []int64{12, 11, 10, 9, 8}, viewIDs(v))

	v = m.Search("project")
	assert.Equal(t, []int64{12, 11, 10, 9, 8}, viewIDs(v))
}

func TestManager_NonSortableColumnIgnored(t *testing.T) {
	schema := Schema{Columns: []Column{{Name: "code", Kind: KindString}}}
	m := NewManager(Options{Schema: schema})
	require.NoError(t, m.Load(context.Background(), staticSource(numberedRows(3))))

	v := m.SortBy("code")

	assert.False(t, v.Sort.Active())
}

func TestManager_DisabledFeatures(t *testing.T) {
	m := NewManager(Options{
		ItemsPerPage: 10,
		Schema:       testSchema,
		Disabled:     []Feature{FeatureSearch, FeaturePagination, FeatureSort, FeatureSelectAll},
	})
	require.NoError(t, m.Load(context.Background(), staticSource(numberedRows(30))))

	v := m.Search("Project 2")
	assert.Equal(t, 30, v.Counters.TotalFiltered)
	assert.Nil(t, v.Controls)

	v = m.ChangePage(2)
	assert.Equal(t, rangeIDs(11, 20), viewIDs(v))

	v = m.SortBy("code")
	assert.False(t, v.Sort.Active())

	v = m.ToggleSelectAll(true)
	assert.Equal(t, 0, v.Counters.SelectedCount)
}

func TestManager_StateTransitions(t *testing.T) {
	var transitions [][2]State
	var rendered int
	m := NewManager(Options{
		Schema: testSchema,
		OnStateChange: func(from, to State) {
			transitions = append(transitions, [2]State{from, to})
		},
		OnRender: func(View) { rendered++ },
	})
	assert.Equal(t, StateRendered, m.State())

	transitions = nil
	require.NoError(t, m.Load(context.Background(), staticSource(numberedRows(3))))

	assert.Equal(t, [][2]State{{StateRendered, StateLoading}, {StateLoading, StateRendered}}, transitions)
	assert.Equal(t, 2, rendered)
}

func TestManager_EmptySource(t *testing.T) {
	m := NewManager(Options{Schema: testSchema})
	require.NoError(t, m.Load(context.Background(), nil))

	v := m.View()
	assert.True(t, v.Empty)
	assert.Equal(t, 0, v.Counters.TotalUnfiltered)
	assert.Equal(t, Unchecked, v.SelectAll)
}

func TestManager_DeleteHook(t *testing.T) {
	type call struct {
		id         int64
		code, name string
	}
	var calls []call
	m := NewManager(Options{
		ItemsPerPage: 10,
		Schema:       testSchema,
		OnDelete: func(id int64, code, name string) {
			calls = append(calls, call{id, code, name})
		},
	})
	require.NoError(t, m.Load(context.Background(), staticSource(numberedRows(30))))

	assert.True(t, m.Delete(3))
	assert.False(t, m.Delete(25))

	assert.Equal(t, []call{{3, "PRJ-003", "Project 3"}}, calls)
}
