package datatable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectMarkup = `<table class="table">
<tbody id="tableBody">
  <tr data-project-id="12">
    <td><input type="checkbox" class="mkba-row-select" value="12"></td>
    <td data-sort="RN-01">RN-01</td>
    <td data-sort="Route nationale">Route <b>nationale</b></td>
    <td data-sort="infrastructure">Infrastructure</td>
    <td>high</td>
  </tr>
  <tr data-project-id="abc"><td></td><td data-sort="BAD">BAD</td></tr>
  <tr><td>no key</td></tr>
  <tr data-project-id="15">
    <td></td>
    <td data-sort="EDU-02">EDU-02</td>
    <td data-sort="Ecole">Ecole</td>
  </tr>
</tbody>
</table>`

func TestMarkupSource_Rows(t *testing.T) {
	src := &MarkupSource{
		Markup: projectMarkup,
		Cells:  []string{"", "code", "name", "category", "priority"},
	}

	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(12), rows[0].ID)
	assert.Equal(t, "RN-01", rows[0].Text("code"))
	assert.Equal(t, "Route nationale", rows[0].Text("name"))
	assert.Equal(t, "high", rows[0].Text("priority"))
	assert.Contains(t, rows[0].Snapshot, `data-project-id="12"`)
	assert.Contains(t, rows[0].Snapshot, "<b>nationale</b>")

	assert.Equal(t, int64(15), rows[1].ID)
	_, hasCategory := rows[1].Fields["category"]
	assert.False(t, hasCategory)
}

func TestMarkupSource_MissingContainer(t *testing.T) {
	src := &MarkupSource{Markup: projectMarkup, Container: "otherBody", Cells: []string{"", "code"}}

	rows, err := src.Rows(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMarkupSource_FeedsManager(t *testing.T) {
	m := NewManager(Options{Schema: testSchema})
	src := &MarkupSource{Markup: projectMarkup, Cells: []string{"", "code", "name", "category"}}

	require.NoError(t, m.Load(context.Background(), src))
	v := m.Search("ecole")

	require.Len(t, v.Rows, 1)
	assert.Equal(t, int64(15), v.Rows[0].ID)
	assert.Equal(t, "", v.Rows[0].Fields["category"])
}

func TestMarkupSource_Fragments(t *testing.T) {
	tests := map[string]struct {
		markup string
		want   []int64
	}{
		"bare tbody": {
			markup: `<tbody id="tableBody"><tr data-project-id="7"><td data-sort="A">A</td></tr></tbody>`,
			want:   []int64{7},
		},
		"bare tbody with several rows": {
			markup: `<tbody id="tableBody">
  <tr data-project-id="7"><td data-sort="A">A</td></tr>
  <tr data-project-id="8"><td>B</td></tr>
</tbody>`,
			want: []int64{7, 8},
		},
		"table inside a div": {
			markup: `<div><table><tbody id="tableBody"><tr data-project-id="9"><td>C</td></tr></tbody></table></div>`,
			want:   []int64{9},
		},
		"rows without container": {
			markup: `<tr data-project-id="7"><td>A</td></tr>`,
			want:   nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rows, err := (&MarkupSource{Markup: tc.markup, Cells: []string{"code"}}).Rows(context.Background())
			require.NoError(t, err)

			var got []int64
			for _, r := range rows {
				got = append(got, r.ID)
			}
			assert.Equal(t, tc.want, got)
		})
	}

	rows, err := (&MarkupSource{
		Markup: `<tbody id="tableBody"><tr data-project-id="7"><td data-sort="A">A</td></tr></tbody>`,
		Cells:  []string{"code"},
	}).Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Text("code"))
	assert.Contains(t, rows[0].Snapshot, `data-project-id="7"`)
}
