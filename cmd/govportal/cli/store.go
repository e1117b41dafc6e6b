package cli

import (
	"context"
	"fmt"

	config "github.com/mwantia/govportal/internal/config/server"
	"github.com/mwantia/govportal/pkg/db/store"
)

// OpenStore loads the server configuration and connects to the portal store
// it points at. Migrations are not applied.
func OpenStore(ctx context.Context) (*store.SQLiteStore, *config.BaseServerConfig, error) {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load server configuration: %w", err)
	}

	st, err := store.NewFromConfig(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Connect(ctx); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to connect to portal store: %w", err)
	}

	return st, cfg, nil
}
