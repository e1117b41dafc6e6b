package datatable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	requests []BulkRequest
	err      error
	onExec   func(req BulkRequest)
}

func (f *fakeExecutor) Execute(_ context.Context, req BulkRequest) (BulkResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return BulkResult{}, f.err
	}
	if f.onExec != nil {
		f.onExec(req)
	}
	return BulkResult{Count: int64(len(req.IDs)), Message: "ok"}, nil
}

// mutableSource serves whatever rows it currently holds.
type mutableSource struct {
	rows []Row
}

func (s *mutableSource) Rows(context.Context) ([]Row, error) {
	return s.rows, nil
}

func TestParseBulkAction(t *testing.T) {
	for _, a := range []string{"activate", "deactivate", "delete"} {
		got, err := ParseBulkAction(a)
		require.NoError(t, err)
		assert.Equal(t, BulkAction(a), got)
	}

	_, err := ParseBulkAction("archive")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestManager_RunBulkSuccess(t *testing.T) {
	src := &mutableSource{rows: numberedRows(12)}
	var hooked []int64
	m := NewManager(Options{
		ItemsPerPage: 5,
		Schema:       testSchema,
		OnBulkAction: func(_ BulkAction, ids []int64) { hooked = ids },
	})
	require.NoError(t, m.Load(context.Background(), src))

	m.SelectRow(2, true)
	m.SelectRow(4, true)
	m.ChangePage(2)
	m.SelectRow(8, true)

	exec := &fakeExecutor{onExec: func(req BulkRequest) {
		src.rows = src.rows[:len(src.rows)-len(req.IDs)]
	}}
	res, err := m.RunBulk(context.Background(), ActionDelete, func(BulkRequest) bool { return true }, exec, src)

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Count)
	assert.Equal(t, []BulkRequest{{Action: ActionDelete, IDs: []int64{2, 4, 8}}}, exec.requests)
	assert.Equal(t, []int64{2, 4, 8}, hooked)

	v := m.View()
	assert.Equal(t, 0, v.Counters.SelectedCount)
	assert.Equal(t, 9, v.Counters.TotalUnfiltered)
	assert.Equal(t, 1, v.Pagination.CurrentPage)
}

func TestManager_RunBulkFailureKeepsSelection(t *testing.T) {
	m := loadedManager(numberedRows(10), 10)
	m.SelectRow(1, true)
	m.SelectRow(2, true)

	cause := errors.New("endpoint returned 500")
	_, err := m.RunBulk(context.Background(), ActionActivate, nil, &fakeExecutor{err: cause}, nil)

	var bulkErr *BulkError
	require.ErrorAs(t, err, &bulkErr)
	assert.Equal(t, ActionActivate, bulkErr.Action)
	assert.Equal(t, []int64{1, 2}, bulkErr.IDs)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []int64{1, 2}, m.Selection().IDs())
}

func TestManager_RunBulkRejections(t *testing.T) {
	tests := map[string]struct {
		action  BulkAction
		selects []int64
		confirm ConfirmFunc
		wantErr error
	}{
		"unknown action": {
			action:  "archive",
			selects: []int64{1},
			wantErr: ErrUnknownAction,
		},
		"empty selection": {
			action:  ActionDeactivate,
			wantErr: ErrNoSelection,
		},
		"declined confirmation": {
			action:  ActionDelete,
			selects: []int64{1},
			confirm: func(BulkRequest) bool { return false },
			wantErr: ErrBulkCancelled,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m := loadedManager(numberedRows(5), 10)
			for _, id := range tc.selects {
				m.SelectRow(id, true)
			}
			exec := &fakeExecutor{}

			_, err := m.RunBulk(context.Background(), tc.action, tc.confirm, exec, nil)

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, exec.requests)
			assert.Equal(t, len(tc.selects), m.Selection().Count())
		})
	}
}

func TestManager_DeleteRow(t *testing.T) {
	src := &mutableSource{rows: numberedRows(5)}
	var deleted []int64
	m := NewManager(Options{
		Schema:   testSchema,
		OnDelete: func(id int64, _, _ string) { deleted = append(deleted, id) },
	})
	require.NoError(t, m.Load(context.Background(), src))
	m.SelectRow(3, true)

	exec := &fakeExecutor{onExec: func(BulkRequest) {
		src.rows = append(append([]Row{}, src.rows[:2]...), src.rows[3:]...)
	}}
	_, err := m.DeleteRow(context.Background(), 3, nil, exec, src)

	require.NoError(t, err)
	assert.Equal(t, []int64{3}, deleted)
	assert.Equal(t, []int64{1, 2, 4, 5}, viewIDs(m.View()))
	assert.False(t, m.Selection().IsSelected(3))

	_, err = m.DeleteRow(context.Background(), 42, nil, exec, src)
	assert.ErrorIs(t, err, ErrRowNotVisible)
}
