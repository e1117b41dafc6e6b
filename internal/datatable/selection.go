package datatable

import "slices"

// TriState is the state of the select-all control.
type TriState string

const (
	Unchecked     TriState = "unchecked"
	Indeterminate TriState = "indeterminate"
	Checked       TriState = "checked"
)

// Selection is the set of selected row IDs. Membership does not depend on the
// current filter, sort or page.
type Selection struct {
	ids map[int64]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[int64]struct{})}
}

// Toggle flips the membership of id and returns the new state.
func (s *Selection) Toggle(id int64) bool {
	if s.IsSelected(id) {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Selection) Set(id int64, selected bool) {
	if selected {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

func (s *Selection) IsSelected(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected IDs in ascending order.
func (s *Selection) IDs() []int64 {
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Remove drops the given IDs from the selection.
func (s *Selection) Remove(ids ...int64) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// ToggleAll applies the select-all control to the rows of the current page
// only. When selectVisible is false and every page row is already selected,
// exactly those rows are deselected; otherwise every page row is added to the
// selection. Selections on other pages are never touched.
func (s *Selection) ToggleAll(page []Row, selectVisible bool) {
	selected := 0
	for _, r := range page {
		if s.IsSelected(r.ID) {
			selected++
		}
	}

	shouldSelect := selectVisible || selected != len(page)
	for _, r := range page {
		s.Set(r.ID, shouldSelect)
	}
}

// StateOf reconciles the select-all control against the rendered rows.
func (s *Selection) StateOf(page []Row) TriState {
	selected := 0
	for _, r := range page {
		if s.IsSelected(r.ID) {
			selected++
		}
	}

	switch {
	case len(page) > 0 && selected == len(page):
		return Checked
	case selected > 0:
		return Indeterminate
	default:
		return Unchecked
	}
}
