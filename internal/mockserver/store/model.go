package store

import (
	"time"

	"gorm.io/datatypes"
)

// Record is one stored entity. Every property except the number lives in
// the JSON column so the table serves all resources.
type Record struct {
	ID         int64             `gorm:"primaryKey;autoIncrement:false"`
	Resource   string            `gorm:"size:32;not null;uniqueIndex:ux_entities_resource_number,priority:1"`
	Number     string            `gorm:"size:64;not null;uniqueIndex:ux_entities_resource_number,priority:2"`
	Properties datatypes.JSONMap `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Record) TableName() string { return "entities" }

// Entry is a stored entity as seen by callers of Store.
type Entry struct {
	Resource   string
	Number     string
	Properties map[string]string
	InUse      bool
}

func (r Record) properties() map[string]string {
	out := make(map[string]string, len(r.Properties))
	for k, v := range r.Properties {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func toJSONMap(props map[string]string) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
