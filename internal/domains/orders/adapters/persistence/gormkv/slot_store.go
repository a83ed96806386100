// Package gormkv keeps storage slots in a relational table through GORM,
// so PostgreSQL and MySQL share one adapter.
package gormkv

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

var _ ports.SlotStore = (*SlotStore)(nil)

// SlotStore persists slots in the storage_slots table.
type SlotStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSlotStore wires a GORM-backed slot store. The schema comes from
// platform/migrations.
func NewSlotStore(db *gorm.DB) *SlotStore {
	return &SlotStore{db: db, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *SlotStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get loads the slot payload.
func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record slotRecord
	if err := s.db.WithContext(ctx).First(&record, "slot_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrSlotNotFound
		}
		return nil, err
	}
	return record.Payload, nil
}

// Put upserts the slot payload.
func (s *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	record := slotRecord{Key: key, Payload: value, UpdatedAt: s.now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
}

func (s *SlotStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("slot store database not configured")
	}
	return nil
}

type slotRecord struct {
	Key       string    `gorm:"primaryKey;column:slot_key;size:191"`
	Payload   []byte    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (slotRecord) TableName() string { return "storage_slots" }
