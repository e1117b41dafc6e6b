package datatable

import "strconv"

const (
	DefaultItemsPerPage = 25

	// pageWindowRadius is the number of page buttons shown on each side of
	// the current page.
	pageWindowRadius = 2
)

// Pagination is the 1-based current page and the page size.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

type ControlKind string

const (
	ControlPrevious ControlKind = "previous"
	ControlNext     ControlKind = "next"
	ControlPage     ControlKind = "page"
	ControlEllipsis ControlKind = "ellipsis"
)

// PageControl describes one pagination button. Page is the page the control
// navigates to and is zero for ellipsis markers.
type PageControl struct {
	Kind     ControlKind `json:"kind"`
	Page     int         `json:"page,omitempty"`
	Label    string      `json:"label"`
	Active   bool        `json:"active,omitempty"`
	Disabled bool        `json:"disabled,omitempty"`
}

// TotalPages returns ceil(total / perPage), or 0 for an empty view.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// clamp keeps CurrentPage within [1, max(1, totalPages)].
func (p Pagination) clamp(total int) Pagination {
	if p.ItemsPerPage <= 0 {
		p.ItemsPerPage = DefaultItemsPerPage
	}
	pages := TotalPages(total, p.ItemsPerPage)
	if p.CurrentPage > pages {
		p.CurrentPage = pages
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	return p
}

// Paginate slices view into the rows of the current page and builds the
// page-control descriptors. No controls are produced for a single page.
func Paginate(view []Row, p Pagination) ([]Row, []PageControl) {
	p = p.clamp(len(view))

	start := (p.CurrentPage - 1) * p.ItemsPerPage
	end := min(start+p.ItemsPerPage, len(view))
	var rows []Row
	if start < len(view) {
		rows = view[start:end]
	}

	return rows, Controls(p.CurrentPage, TotalPages(len(view), p.ItemsPerPage))
}

// Controls returns the previous/next buttons around a window of up to five
// page numbers centered on current, with first/last shortcuts and ellipsis
// markers when the window does not reach the ends.
func Controls(current, totalPages int) []PageControl {
	if totalPages <= 1 {
		return nil
	}

	controls := []PageControl{{
		Kind:     ControlPrevious,
		Page:     current - 1,
		Label:    "‹",
		Disabled: current == 1,
	}}

	first := max(1, current-pageWindowRadius)
	last := min(totalPages, current+pageWindowRadius)

	if first > 1 {
		controls = append(controls, pageControl(1, current))
		if first > 2 {
			controls = append(controls, PageControl{Kind: ControlEllipsis, Label: "...", Disabled: true})
		}
	}

	for i := first; i <= last; i++ {
		controls = append(controls, pageControl(i, current))
	}

	if last < totalPages {
		if last < totalPages-1 {
			controls = append(controls, PageControl{Kind: ControlEllipsis, Label: "...", Disabled: true})
		}
		controls = append(controls, pageControl(totalPages, current))
	}

	return append(controls, PageControl{
		Kind:     ControlNext,
		Page:     current + 1,
		Label:    "›",
		Disabled: current == totalPages,
	})
}

func pageControl(page, current int) PageControl {
	return PageControl{
		Kind:   ControlPage,
		Page:   page,
		Label:  strconv.Itoa(page),
		Active: page == current,
	}
}
