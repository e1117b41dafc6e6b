package datatable

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultContainerID = "tableBody"
	DefaultKeyAttr     = "data-project-id"
	sortAttr           = "data-sort"
)

// MarkupSource extracts rows from server-rendered table markup. Each <tr>
// carrying KeyAttr inside the element with id Container becomes one row;
// Cells maps a cell index to a field name and the value is read from the
// cell's data-sort attribute, falling back to its text. The rendered <tr> is
// kept as the row snapshot.
//
// A missing container yields an empty dataset rather than an error.
type MarkupSource struct {
	Markup    string
	Container string
	KeyAttr   string
	Cells     []string
}

var _ Source = (*MarkupSource)(nil)

func (ms *MarkupSource) Rows(_ context.Context) ([]Row, error) {
	container := ms.Container
	if container == "" {
		container = DefaultContainerID
	}
	keyAttr := ms.KeyAttr
	if keyAttr == "" {
		keyAttr = DefaultKeyAttr
	}

	root, err := findContainer(ms.Markup, container)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}

	var rows []Row
	for _, tr := range findAll(root, "tr") {
		key, ok := attr(tr, keyAttr)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			continue
		}

		fields := make(map[string]any, len(ms.Cells))
		for i, td := range cells(tr) {
			if i >= len(ms.Cells) || ms.Cells[i] == "" {
				continue
			}
			value, ok := attr(td, sortAttr)
			if !ok {
				value = strings.TrimSpace(textContent(td))
			}
			fields[ms.Cells[i]] = value
		}

		var snapshot strings.Builder
		if err := html.Render(&snapshot, tr); err != nil {
			return nil, fmt.Errorf("failed to render row %d: %w", id, err)
		}

		rows = append(rows, Row{ID: id, Fields: fields, Snapshot: snapshot.String()})
	}
	return rows, nil
}

// findContainer locates the container element in markup. Whole documents
// are searched first; fragments such as a bare <tbody> are parsed again in
// a <table> context, where the parser keeps table rows.
func findContainer(markup, id string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse table markup: %w", err)
	}
	if root := findByID(doc, id); root != nil {
		return root, nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "table",
		DataAtom: atom.Table,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse table markup: %w", err)
	}
	for _, n := range nodes {
		if root := findByID(n, id); root != nil {
			return root, nil
		}
	}
	return nil, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attr(n, "id"); ok && v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
			continue
		}
		out = append(out, findAll(c, tag)...)
	}
	return out
}

func cells(tr *html.Node) []*html.Node {
	var out []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			out = append(out, c)
		}
	}
	return out
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
