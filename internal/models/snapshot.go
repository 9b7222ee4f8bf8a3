package models

import (
	"time"

	"gorm.io/datatypes"
)

// CollectionSnapshot is one persisted closet collection, keyed by
// collection name with the serialized records as a jsonb document.
type CollectionSnapshot struct {
	Key       string         `gorm:"primaryKey;size:50" json:"key"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null" json:"data"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (CollectionSnapshot) TableName() string {
	return "collection_snapshots"
}
