package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/mwantia/govportal/internal/datatable"
	"github.com/mwantia/govportal/pkg/db/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const dateLayout = "2006-01-02"

const (
	statusActive   = "active"
	statusInactive = "inactive"
)

func activeStatus(active bool) string {
	if active {
		return statusActive
	}
	return statusInactive
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func projectRow(p models.Project, t Table) datatable.Row {
	fields := map[string]any{
		"code":        p.Code,
		"name":        p.Name,
		"category":    p.Category,
		"priority":    p.Priority,
		"status":      p.Status,
		"responsible": p.Responsible,
		"department":  p.Department,
		"budget":      p.Budget,
		"start_date":  formatDate(p.StartDate),
		"end_date":    formatDate(p.EndDate),
		"active":      activeStatus(p.IsActive),
		"created_at":  formatDate(&p.CreatedAt),
	}
	return newRow(int64(p.ID), t, fields)
}

func documentRow(d models.Document, t Table) datatable.Row {
	family := ""
	if d.Family != nil {
		family = d.Family.Name
	}
	fields := map[string]any{
		"name":       d.Name,
		"family":     family,
		"filename":   d.OriginalFilename,
		"mime_type":  d.MimeType,
		"file_size":  d.FileSize,
		"status":     activeStatus(d.IsActive),
		"created_at": formatDate(&d.CreatedAt),
	}
	return newRow(int64(d.ID), t, fields)
}

func familyRow(f models.Family, t Table) datatable.Row {
	fields := map[string]any{
		"code":          f.Code,
		"name":          f.Name,
		"icon":          f.Icon,
		"display_order": f.DisplayOrder,
		"status":        activeStatus(f.IsActive),
		"created_at":    formatDate(&f.CreatedAt),
	}
	return newRow(int64(f.ID), t, fields)
}

func newRow(id int64, t Table, fields map[string]any) datatable.Row {
	return datatable.Row{
		ID:       id,
		Fields:   fields,
		Snapshot: snapshot(id, t.KeyAttr, fields, t.Cells),
	}
}

// snapshot renders the row the way the back office lists it. Every cell
// carries its raw value in data-sort so the markup can be extracted again.
func snapshot(id int64, keyAttr string, fields map[string]any, cells []string) string {
	tr := &html.Node{
		Type:     html.ElementNode,
		Data:     "tr",
		DataAtom: atom.Tr,
		Attr:     []html.Attribute{{Key: keyAttr, Val: strconv.FormatInt(id, 10)}},
	}

	for _, name := range cells {
		value := datatable.Row{Fields: fields}.Text(name)
		td := &html.Node{
			Type:     html.ElementNode,
			Data:     "td",
			DataAtom: atom.Td,
			Attr: []html.Attribute{
				{Key: "data-field", Val: name},
				{Key: "data-sort", Val: value},
			},
		}
		td.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		tr.AppendChild(td)
	}

	var b strings.Builder
	if err := html.Render(&b, tr); err != nil {
		return ""
	}
	return b.String()
}
