package catalog

import (
	"context"
	"fmt"

	"github.com/mwantia/govportal/internal/datatable"
	"github.com/mwantia/govportal/internal/session"
	"github.com/mwantia/govportal/pkg/db/store"
	"github.com/mwantia/govportal/pkg/log"
)

type OpenOptions struct {
	ItemsPerPage int
	// ProjectDateField overrides the field the date-range filter targets on
	// the projects table.
	ProjectDateField string
	Logger           log.LoggerService
}

// NewOpener returns a session.Opener that binds a freshly loaded manager to
// the catalog table named by the session.
func NewOpener(s store.PortalStore, opts OpenOptions) session.Opener {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return func(ctx context.Context, name string) (session.Binding, error) {
		table, err := Lookup(name)
		if err != nil {
			return session.Binding{}, err
		}

		schema := table.Schema
		if name == store.TableProjects && opts.ProjectDateField != "" {
			schema.DateField = opts.ProjectDateField
		}

		tableLogger := logger.Named(name)
		m := datatable.NewManager(datatable.Options{
			Table:        name,
			ItemsPerPage: opts.ItemsPerPage,
			Schema:       schema,
			OnDelete: func(id int64, code, label string) {
				tableLogger.Info("Delete requested for row %d ('%s' %s)", id, code, label)
			},
			OnBulkAction: func(action datatable.BulkAction, ids []int64) {
				tableLogger.Info("Running bulk '%s' on %d row(s)", action, len(ids))
			},
		})

		src := NewSource(s, table)
		if err := m.Load(ctx, src); err != nil {
			return session.Binding{}, fmt.Errorf("failed to load table '%s': %w", name, err)
		}

		return session.Binding{
			Manager:  m,
			Source:   src,
			Executor: NewExecutor(s, table),
		}, nil
	}
}
