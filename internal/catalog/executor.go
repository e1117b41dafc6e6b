package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwantia/govportal/internal/datatable"
	"github.com/mwantia/govportal/pkg/db/store"
)

const (
	LanguageFR = "fr"
	LanguageEN = "en"
)

// Executor applies bulk actions to a catalog table. Deletes are soft deletes.
type Executor struct {
	store    store.PortalStore
	table    Table
	language string
}

var _ datatable.BulkExecutor = (*Executor)(nil)

func NewExecutor(s store.PortalStore, table Table) *Executor {
	return &Executor{store: s, table: table, language: LanguageFR}
}

// WithLanguage returns a copy of the executor answering in lang. Anything
// other than English falls back to French.
func (e *Executor) WithLanguage(lang string) *Executor {
	c := *e
	c.language = normalizeLanguage(lang)
	return &c
}

func (e *Executor) Execute(ctx context.Context, req datatable.BulkRequest) (datatable.BulkResult, error) {
	ids := make([]uint, 0, len(req.IDs))
	for _, id := range req.IDs {
		if id > 0 {
			ids = append(ids, uint(id))
		}
	}
	if len(ids) == 0 {
		return datatable.BulkResult{}, datatable.ErrNoSelection
	}

	var (
		count int64
		err   error
	)
	switch req.Action {
	case datatable.ActionActivate:
		count, err = e.store.SetActive(ctx, e.table.Name, ids, true)
	case datatable.ActionDeactivate:
		count, err = e.store.SetActive(ctx, e.table.Name, ids, false)
	case datatable.ActionDelete:
		count, err = e.store.SoftDelete(ctx, e.table.Name, ids)
	default:
		return datatable.BulkResult{}, fmt.Errorf("%w: '%s'", datatable.ErrUnknownAction, req.Action)
	}
	if err != nil {
		return datatable.BulkResult{}, err
	}

	return datatable.BulkResult{
		Count:   count,
		Message: message(e.language, req.Action, count),
	}, nil
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if strings.HasPrefix(lang, LanguageEN) {
		return LanguageEN
	}
	return LanguageFR
}

var verbs = map[string]map[datatable.BulkAction]string{
	LanguageFR: {
		datatable.ActionActivate:   "activé(s)",
		datatable.ActionDeactivate: "désactivé(s)",
		datatable.ActionDelete:     "supprimé(s)",
	},
	LanguageEN: {
		datatable.ActionActivate:   "activated",
		datatable.ActionDeactivate: "deactivated",
		datatable.ActionDelete:     "deleted",
	},
}

func message(lang string, action datatable.BulkAction, count int64) string {
	if lang == LanguageEN {
		return fmt.Sprintf("%d item(s) %s successfully", count, verbs[LanguageEN][action])
	}
	return fmt.Sprintf("%d élément(s) %s avec succès", count, verbs[LanguageFR][action])
}
