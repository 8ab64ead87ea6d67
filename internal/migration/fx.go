package migration

import (
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/config"
	"github.com/quisqueyalabs/contalibro/internal/seed"
	"go.uber.org/fx"
)

// Module migrates and seeds the SQL backend on startup. Firestore has no
// schema; in cloud mode this module is a no-op.
var Module = fx.Module("migrations",
	fx.Invoke(func(b *backend.Backends, cfg config.Config) error {
		if b.SQL == nil {
			return nil
		}

		sqlDB, err := b.SQL.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}
		return seed.EnsureCurrencies(b.SQL)
	}),
)
