package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	obslogger "github.com/smallbiznis/netlicensing/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig configures the embedded database.
type DBConfig struct {
	// DSN is a SQLite data source. Blank opens a private in-memory database.
	DSN string
}

// Open connects the embedded SQLite database and migrates the entity table.
func Open(cfg DBConfig, log *zap.Logger) (*gorm.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		dsn = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: obslogger.NewGormLogger(log, obslogger.DefaultGormLoggerConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Use(otelgorm.NewPlugin(otelgorm.WithDBName("netlicensing"), otelgorm.WithoutQueryVariables())); err != nil {
		return nil, fmt.Errorf("instrument store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers; one connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return db, nil
}

type dbParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    DBConfig
	Log       *zap.Logger
}

func provideDB(p dbParams) (*gorm.DB, error) {
	db, err := Open(p.Config, p.Log)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}
