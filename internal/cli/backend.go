package cli

import (
	"context"
	"fmt"

	"ltask/internal/config"
	"ltask/internal/persist"
	"ltask/internal/persist/jsonfile"
	"ltask/internal/persist/sqlite"
)

// OpenBackend is the StoreFactory used by the ltask binary. It picks the
// backend named in cfg.Backend.
func OpenBackend(ctx context.Context, cfg *config.Config) (persist.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
		return sqlite.Open(cfg.DatabasePath(), cfg.Logger)
	case config.BackendJSON, "":
		return jsonfile.New(cfg.DataDir(), cfg.Logger), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
