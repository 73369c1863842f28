package store

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module provides the database and the entity store. DBConfig and a
// snowflake node must be supplied by the application.
var Module = fx.Module("mockserver.store",
	fx.Provide(provideDB),
	fx.Provide(func(db *gorm.DB, node *snowflake.Node) *Store {
		return New(db, node)
	}),
)
