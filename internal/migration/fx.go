package migration

import (
	"github.com/smallbiznis/pos/internal/config"
	"github.com/smallbiznis/pos/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if err := Run(conn, cfg.DBType); err != nil {
			return err
		}

		if !cfg.SeedCatalog {
			return nil
		}
		if err := seed.EnsureCatalog(conn); err != nil {
			return err
		}
		log.Info("catalog seeded")
		return nil
	}),
)
