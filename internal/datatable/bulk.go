package datatable

import (
	"context"
	"errors"
	"fmt"
)

// BulkAction is an operation applied to every selected row in one request.
type BulkAction string

const (
	ActionActivate   BulkAction = "activate"
	ActionDeactivate BulkAction = "deactivate"
	ActionDelete     BulkAction = "delete"
)

var (
	ErrUnknownAction = errors.New("unknown bulk action")
	ErrNoSelection   = errors.New("no row selected")
	ErrBulkCancelled = errors.New("bulk action cancelled")
	ErrRowNotVisible = errors.New("row is not on the current page")
)

func ParseBulkAction(s string) (BulkAction, error) {
	switch a := BulkAction(s); a {
	case ActionActivate, ActionDeactivate, ActionDelete:
		return a, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownAction, s)
	}
}

// BulkRequest is the payload sent to the host action endpoint.
type BulkRequest struct {
	Action BulkAction `json:"action"`
	IDs    []int64    `json:"ids"`
}

type BulkResult struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

// BulkExecutor performs a bulk action on behalf of the host application.
type BulkExecutor interface {
	Execute(ctx context.Context, req BulkRequest) (BulkResult, error)
}

// ConfirmFunc is asked before a bulk action is executed. Returning false
// cancels the action.
type ConfirmFunc func(req BulkRequest) bool

// BulkError reports a failed bulk action. The selection is left untouched so
// the action can be retried.
type BulkError struct {
	Action BulkAction
	IDs    []int64
	Err    error
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("bulk %s on %d row(s) failed: %v", e.Action, len(e.IDs), e.Err)
}

func (e *BulkError) Unwrap() error {
	return e.Err
}

// RunBulk collects the selected IDs, asks confirm, sends the request to exec
// and, on success, clears the affected IDs from the selection and reloads
// the dataset from src. A nil src only re-renders the current dataset.
func (m *Manager) RunBulk(ctx context.Context, action BulkAction, confirm ConfirmFunc, exec BulkExecutor, src Source) (BulkResult, error) {
	if _, err := ParseBulkAction(string(action)); err != nil {
		return BulkResult{}, err
	}

	ids := m.selection.IDs()
	if len(ids) == 0 {
		return BulkResult{}, ErrNoSelection
	}

	return m.execute(ctx, BulkRequest{Action: action, IDs: ids}, confirm, exec, src)
}

// DeleteRow fires the delete hook of a visible row and runs a single-row
// delete through the same protocol as RunBulk.
func (m *Manager) DeleteRow(ctx context.Context, id int64, confirm ConfirmFunc, exec BulkExecutor, src Source) (BulkResult, error) {
	if !m.visible(id) {
		return BulkResult{}, fmt.Errorf("%w: %d", ErrRowNotVisible, id)
	}
	m.Delete(id)
	return m.execute(ctx, BulkRequest{Action: ActionDelete, IDs: []int64{id}}, confirm, exec, src)
}

func (m *Manager) execute(ctx context.Context, req BulkRequest, confirm ConfirmFunc, exec BulkExecutor, src Source) (BulkResult, error) {
	if confirm != nil && !confirm(req) {
		return BulkResult{}, ErrBulkCancelled
	}

	if m.opts.OnBulkAction != nil {
		m.opts.OnBulkAction(req.Action, req.IDs)
	}

	if exec == nil {
		return BulkResult{}, &BulkError{Action: req.Action, IDs: req.IDs, Err: errors.New("no executor configured")}
	}

	result, err := exec.Execute(ctx, req)
	if err != nil {
		return BulkResult{}, &BulkError{Action: req.Action, IDs: req.IDs, Err: err}
	}

	m.selection.Remove(req.IDs...)
	if src == nil {
		m.render(true)
		return result, nil
	}
	if err := m.Reload(ctx, src); err != nil {
		return result, fmt.Errorf("failed to reload after bulk %s: %w", req.Action, err)
	}
	return result, nil
}
