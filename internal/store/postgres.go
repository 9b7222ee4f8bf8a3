package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/what2wear/backend/internal/closet"
	"github.com/what2wear/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot row keys, one per persisted collection.
const (
	keyClothingItems = "clothing_items"
	keyOutfits       = "outfits"
	keyLikedOutfits  = "liked_outfits"
	keyEvents        = "events"
	keyUserProfile   = "user_profile"
	keyOnboarding    = "onboarding_completed"
)

// PostgresStore keeps one jsonb row per collection in the
// collection_snapshots table. All rows are upserted inside a single
// transaction so readers never observe a half-written snapshot.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context) (*closet.Snapshot, error) {
	var rows []models.CollectionSnapshot
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load snapshot rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	snap := &closet.Snapshot{}
	for _, row := range rows {
		var dest any
		switch row.Key {
		case keyClothingItems:
			dest = &snap.ClothingItems
		case keyOutfits:
			dest = &snap.Outfits
		case keyLikedOutfits:
			dest = &snap.LikedOutfits
		case keyEvents:
			dest = &snap.Events
		case keyUserProfile:
			dest = &snap.Profile
		case keyOnboarding:
			dest = &snap.Onboarded
		default:
			// Rows written by a newer version; ignore.
			continue
		}
		if err := json.Unmarshal(row.Data, dest); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot row %s: %w", row.Key, err)
		}
	}
	return snap, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap *closet.Snapshot) error {
	values := map[string]any{
		keyClothingItems: snap.ClothingItems,
		keyOutfits:       snap.Outfits,
		keyLikedOutfits:  snap.LikedOutfits,
		keyEvents:        snap.Events,
		keyUserProfile:   snap.Profile,
		keyOnboarding:    snap.Onboarded,
	}

	rows := make([]models.CollectionSnapshot, 0, len(values))
	for key, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot row %s: %w", key, err)
		}
		rows = append(rows, models.CollectionSnapshot{Key: key, Data: datatypes.JSON(data)})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("failed to upsert snapshot row %s: %w", row.Key, err)
			}
		}
		return nil
	})
}
