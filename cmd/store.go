package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/meteorite-cli/internal/store"
)

// initStore opens and migrates the run history database.
func initStore(ctx context.Context) (store.Store, error) {
	if cfg.Store.DatabaseURL == "" {
		return nil, eris.New("run history is disabled (set METEORITE_STORE_DATABASE_URL or store.database_url)")
	}
	st, err := store.NewSQLite(cfg.Store.DatabaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// openHistory is initStore for commands where history is optional: it
// returns a nil store when no database is configured.
func openHistory(ctx context.Context) (store.Store, error) {
	if cfg.Store.DatabaseURL == "" {
		return nil, nil
	}
	return initStore(ctx)
}
