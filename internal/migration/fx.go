package migration

import (
	"github.com/smallbiznis/dentalpay/internal/config"
	"github.com/smallbiznis/dentalpay/internal/seed"
	"github.com/smallbiznis/dentalpay/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, dbCfg db.Config, cfg config.Config, log *zap.Logger) error {
		if dbCfg.Type == db.TypePostgres {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else if err := AutoMigrate(conn); err != nil {
			return err
		}
		log.Info("schema ready", zap.String("dialect", dbCfg.Type))

		if cfg.SeedSpecialties {
			return seed.EnsureSpecialties(conn)
		}
		return nil
	}),
)
