package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionRecord is one stored collection.
type CollectionRecord struct {
	Name      string         `gorm:"primaryKey;size:191"`
	Data      datatypes.JSON `gorm:"not null"`
	Version   int64          `gorm:"not null;default:1"`
	UpdatedAt time.Time
}

func (CollectionRecord) TableName() string {
	return "collections"
}

// GormStore keeps every collection as a JSON row in the collections table.
type GormStore struct {
	db     *gorm.DB
	ids    *IDGenerator
	logger *zap.Logger
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a store over db. AutoMigrate must have been run for CollectionRecord.
func NewGormStore(db *gorm.DB, logger *zap.Logger) *GormStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormStore{db: db, ids: NewIDGenerator(), logger: logger}
}

// Migrate creates the collections table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CollectionRecord{})
}

// GetAll loads a collection into dest
func (s *GormStore) GetAll(ctx context.Context, collection string, dest interface{}) error {
	var rec CollectionRecord
	err := s.db.WithContext(ctx).First(&rec, "name = ?", collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decodeCollection(s.logger, collection, nil, dest)
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrStorage, collection, err)
	}
	return decodeCollection(s.logger, collection, rec.Data, dest)
}

// SaveAll overwrites a collection and bumps its version
func (s *GormStore) SaveAll(ctx context.Context, collection string, items interface{}) error {
	data, err := encodeCollection(collection, items)
	if err != nil {
		return err
	}

	now := time.Now()
	rec := CollectionRecord{Name: collection, Data: datatypes.JSON(data), Version: 1, UpdatedAt: now}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"data":       datatypes.JSON(data),
			"version":    gorm.Expr("collections.version + 1"),
			"updated_at": now,
		}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, collection, err)
	}
	return nil
}

// Delete drops a collection
func (s *GormStore) Delete(ctx context.Context, collection string) error {
	if err := s.db.WithContext(ctx).Delete(&CollectionRecord{}, "name = ?", collection).Error; err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorage, collection, err)
	}
	return nil
}

// Version returns the write counter of a collection, 0 when it was never written.
func (s *GormStore) Version(ctx context.Context, collection string) (int64, error) {
	var rec CollectionRecord
	err := s.db.WithContext(ctx).Select("version").First(&rec, "name = ?", collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", ErrStorage, collection, err)
	}
	return rec.Version, nil
}

func (s *GormStore) Exists(ctx context.Context, collection string) (bool, error) {
	v, err := s.Version(ctx, collection)
	return v > 0, err
}

// NewID returns a process unique id
func (s *GormStore) NewID() string {
	return s.ids.NewID()
}
