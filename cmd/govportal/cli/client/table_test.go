package client

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mwantia/govportal/internal/catalog"
	"github.com/mwantia/govportal/internal/datatable"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	tests := map[string]struct {
		values  []string
		want    map[string]string
		wantErr bool
	}{
		"none": {
			values: nil,
			want:   nil,
		},
		"pairs": {
			values: []string{"category=sante", " priority =high"},
			want:   map[string]string{"category": "sante", "priority": "high"},
		},
		"value with equals": {
			values: []string{"name=a=b"},
			want:   map[string]string{"name": "a=b"},
		},
		"missing separator": {
			values:  []string{"category"},
			wantErr: true,
		},
		"empty key": {
			values:  []string{"=sante"},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseFilters(tc.values)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAskConfirm(t *testing.T) {
	req := datatable.BulkRequest{Action: datatable.ActionDelete, IDs: []int64{1, 2}}

	tests := map[string]bool{
		"y\n":   true,
		"oui\n": true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
	}

	for input, want := range tests {
		var out bytes.Buffer
		assert.Equal(t, want, askConfirm(strings.NewReader(input), &out, req), "input %q", input)
		assert.Contains(t, out.String(), "Run 'delete' on 2 row(s)?")
	}
}

func TestPrintView(t *testing.T) {
	table, err := catalog.Lookup("families")
	require.NoError(t, err)

	m := datatable.NewManager(datatable.Options{Table: table.Name, Schema: table.Schema, ItemsPerPage: 2})
	require.NoError(t, m.Load(t.Context(), datatable.SourceFunc(func(_ context.Context) ([]datatable.Row, error) {
		return []datatable.Row{
			{ID: 1, Fields: map[string]any{"code": "FAM-1", "name": "Lois", "status": "active"}},
			{ID: 2, Fields: map[string]any{"code": "FAM-2", "name": "Rapports", "status": "inactive"}},
			{ID: 3, Fields: map[string]any{"code": "FAM-3", "name": "Formulaires", "status": "active"}},
		}, nil
	})))
	view := m.ApplyFilters(datatable.Criteria{Status: "active"})

	var out bytes.Buffer
	printView(&out, table, view)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "FAM-1")
	assert.Contains(t, lines[2], "FAM-3")
	assert.Equal(t, "Showing 1 to 2 of 2 entries (filtered from 3 total entries), page 1 of 1", lines[3])

	out.Reset()
	printView(&out, table, m.ApplyFilters(datatable.Criteria{Search: "absent"}))
	assert.Equal(t, "No entries found.\n", out.String())
}

func TestTruncate(t *testing.T) {
	tests := map[string]struct {
		value string
		limit int
		want  string
	}{
		"short":           {value: "Lois", limit: 10, want: "Lois"},
		"exact":           {value: "abcdefghij", limit: 10, want: "abcdefghij"},
		"ascii cut":       {value: "abcdefghijkl", limit: 10, want: "abcdefg..."},
		"accented cut":    {value: "Établissement désactivé", limit: 10, want: "Établis..."},
		"accent at limit": {value: "éééééééééééé", limit: 10, want: "ééééééé..."},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := truncate(tc.value, tc.limit)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

const savedListing = `<html><body>
<table class="table"><tbody id="tableBody">
<tr data-project-id="3"><td data-sort="PRJ-003">PRJ-003</td><td data-sort="Route côtière">Route côtière</td><td></td><td></td><td data-sort="in_progress">En cours</td><td></td><td data-sort="900">900</td><td data-sort="2024-02-01">01/02/2024</td><td data-sort="active">Actif</td></tr>
<tr data-project-id="5"><td data-sort="PRJ-005">PRJ-005</td><td data-sort="Hopital">Hopital</td><td></td><td></td><td data-sort="planning">Planifie</td><td></td><td data-sort="12000">12 000</td><td data-sort="2024-05-10">10/05/2024</td><td data-sort="active">Actif</td></tr>
<tr data-project-id="8"><td data-sort="PRJ-008">PRJ-008</td><td data-sort="Route nord">Route nord</td><td></td><td></td><td data-sort="in_progress">En cours</td><td></td><td data-sort="4000">4 000</td><td data-sort="2024-09-01">01/09/2024</td><td data-sort="inactive">Inactif</td></tr>
</tbody></table>
</body></html>`

func TestListViewFromMarkup(t *testing.T) {
	table, err := catalog.Lookup("projects")
	require.NoError(t, err)

	src := catalog.NewMarkupSource(table, savedListing, "")
	view, err := listView(context.Background(), table, src, listOptions{
		search:  "route",
		sort:    "budget",
		desc:    true,
		page:    1,
		perPage: 10,
	}, nil, "")
	require.NoError(t, err)

	require.Len(t, view.Rows, 2)
	assert.Equal(t, int64(8), view.Rows[0].ID)
	assert.Equal(t, int64(3), view.Rows[1].ID)
	assert.Equal(t, 3, view.Counters.TotalUnfiltered)
	assert.Contains(t, view.Rows[0].Snapshot, `data-project-id="8"`)

	view, err = listView(context.Background(), table, src, listOptions{
		from:    "2024-03-01",
		to:      "2024-12-31",
		page:    1,
		perPage: 10,
	}, map[string]string{"active": "active"}, "")
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, int64(5), view.Rows[0].ID)
}

func TestTableListCommandHTML(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "projects.html")
	require.NoError(t, os.WriteFile(path, []byte(savedListing), 0644))

	var out bytes.Buffer
	cmd := NewTableCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"ls", "projects", "--html", path, "--status", "in_progress", "--json"})
	require.NoError(t, cmd.Execute())

	var view struct {
		Counters   datatable.Counters   `json:"counters"`
		Pagination datatable.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, 2, view.Counters.TotalFiltered)
	assert.Equal(t, 25, view.Pagination.ItemsPerPage)
}
