package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mwantia/govportal/cmd/govportal/cli"
	"github.com/mwantia/govportal/internal/catalog"
	config "github.com/mwantia/govportal/internal/config/server"
	"github.com/mwantia/govportal/internal/datatable"
	"github.com/mwantia/govportal/pkg/db/store"
	"github.com/spf13/cobra"
)

func NewTableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Browse and update catalog tables",
		Long: fmt.Sprintf(`Browse and update catalog tables directly against the portal store.

Available tables: %s`, strings.Join(catalog.Names(), ", ")),
	}

	cmd.AddCommand(newTableListCommand())
	cmd.AddCommand(newTableBulkCommand())

	return cmd
}

type listOptions struct {
	search  string
	status  string
	from    string
	to      string
	sort    string
	desc    bool
	page    int
	perPage int
	filters []string
	json    bool

	html      string
	container string
}

func newTableListCommand() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "ls <table>",
		Short: "List one page of a catalog table",
		Long: `List one page of a catalog table after filtering and sorting it.

Rows are read from the portal store, or from a saved listing page with
--html. The page must contain the table body (id "tableBody" unless
--container says otherwise) with one keyed <tr> per row.

Example:
  govportal table ls projects --status in_progress --sort budget --desc
  govportal table ls projects --from 2024-01-01 --to 2024-06-30 --page 2
  govportal table ls documents --filter family=Lois --json
  govportal table ls projects --html projects.html --search route`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}

			advanced, err := parseFilters(opts.filters)
			if err != nil {
				return err
			}

			var (
				src datatable.Source
				cfg *config.BaseServerConfig
			)
			if opts.html != "" {
				markup, err := os.ReadFile(opts.html)
				if err != nil {
					return fmt.Errorf("failed to read markup file: %w", err)
				}
				if cfg, err = config.LoadServerConfig(); err != nil {
					return fmt.Errorf("failed to load server configuration: %w", err)
				}
				src = catalog.NewMarkupSource(table, string(markup), opts.container)
			} else {
				st, storeCfg, err := cli.OpenStore(cmd.Context())
				if err != nil {
					return err
				}
				defer st.Close()

				cfg = storeCfg
				src = catalog.NewSource(st, table)
			}

			if opts.perPage <= 0 {
				opts.perPage = cfg.Table.ItemsPerPage
			}
			view, err := listView(cmd.Context(), table, src, opts, advanced, cfg.Table.DateField)
			if err != nil {
				return err
			}

			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			printView(cmd.OutOrStdout(), table, view)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "free-text search over text columns")
	cmd.Flags().StringVar(&opts.status, "status", "", "exact status filter")
	cmd.Flags().StringVar(&opts.from, "from", "", "earliest date (YYYY-MM-DD) of the date column")
	cmd.Flags().StringVar(&opts.to, "to", "", "latest date (YYYY-MM-DD) of the date column")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "column to sort by")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "sort in descending order")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page to display")
	cmd.Flags().IntVar(&opts.perPage, "per-page", 0, "rows per page (default from configuration)")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "column filter as key=value, repeatable")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the view as JSON")
	cmd.Flags().StringVar(&opts.html, "html", "", "read rows from a saved listing page instead of the store")
	cmd.Flags().StringVar(&opts.container, "container", "", "id of the element holding the rows (default tableBody)")

	return cmd
}

// listView loads src into a fresh manager and applies the list options.
// dateField overrides the date-range column of the projects table.
func listView(ctx context.Context, table catalog.Table, src datatable.Source, opts listOptions, advanced map[string]string, dateField string) (datatable.View, error) {
	schema := table.Schema
	if table.Name == store.TableProjects && dateField != "" {
		schema.DateField = dateField
	}

	m := datatable.NewManager(datatable.Options{
		Table:        table.Name,
		ItemsPerPage: opts.perPage,
		Schema:       schema,
	})
	if err := m.Load(ctx, src); err != nil {
		return datatable.View{}, err
	}

	m.ApplyFilters(datatable.Criteria{
		Search:    opts.search,
		Status:    opts.status,
		DateStart: opts.from,
		DateEnd:   opts.to,
		Advanced:  advanced,
	})
	if opts.sort != "" {
		m.SortBy(opts.sort)
		if opts.desc {
			m.SortBy(opts.sort)
		}
	}
	return m.ChangePage(opts.page), nil
}

func newTableBulkCommand() *cobra.Command {
	var yes bool
	var lang string

	cmd := &cobra.Command{
		Use:   "bulk <table> <activate|deactivate|delete> <id>...",
		Short: "Run a bulk action on catalog rows",
		Long: `Run a bulk action on catalog rows.

Delete is a soft delete: rows disappear from every table but stay in the
store. Without --yes the action must be confirmed interactively.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			action, err := datatable.ParseBulkAction(args[1])
			if err != nil {
				return err
			}

			ids := make([]int64, 0, len(args)-2)
			for _, arg := range args[2:] {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid row id '%s'", arg)
				}
				ids = append(ids, id)
			}

			st, _, err := cli.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			src := catalog.NewSource(st, table)
			m := datatable.NewManager(datatable.Options{
				Table:  table.Name,
				Schema: table.Schema,
			})
			if err := m.Load(cmd.Context(), src); err != nil {
				return err
			}
			for _, id := range ids {
				m.Selection().Set(id, true)
			}

			confirm := func(req datatable.BulkRequest) bool {
				if yes {
					return true
				}
				return askConfirm(cmd.InOrStdin(), cmd.OutOrStdout(), req)
			}

			exec := catalog.NewExecutor(st, table).WithLanguage(lang)
			result, err := m.RunBulk(cmd.Context(), action, confirm, exec, src)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().StringVar(&lang, "lang", catalog.LanguageFR, "message language (fr, en)")

	return cmd
}

func parseFilters(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	filters := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid filter '%s', expected key=value", v)
		}
		filters[strings.TrimSpace(key)] = value
	}
	return filters, nil
}

func askConfirm(in io.Reader, out io.Writer, req datatable.BulkRequest) bool {
	fmt.Fprintf(out, "Run '%s' on %d row(s)? [y/N] ", req.Action, len(req.IDs))

	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "o", "oui":
		return true
	default:
		return false
	}
}

func printView(out io.Writer, table catalog.Table, view datatable.View) {
	if view.Empty {
		fmt.Fprintln(out, "No entries found.")
		return
	}

	columns := table.Columns()

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	header := []string{"ID"}
	for _, c := range columns {
		header = append(header, strings.ToUpper(c.Name))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, r := range view.Rows {
		row := datatable.Row{Fields: r.Fields}
		cells := []string{strconv.FormatInt(r.ID, 10)}
		for _, c := range columns {
			cells = append(cells, truncate(row.Text(c.Name), 40))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}

	c := view.Counters
	fmt.Fprintf(out, "Showing %d to %d of %d entries", c.ShowingFrom, c.ShowingTo, c.TotalFiltered)
	if c.Filtered {
		fmt.Fprintf(out, " (filtered from %d total entries)", c.TotalUnfiltered)
	}
	fmt.Fprintf(out, ", page %d of %d\n", view.Pagination.CurrentPage, view.TotalPages)
}

// truncate shortens value to at most limit runes, marking the cut with "...".
func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}
