package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema shared by the relational slot adapters.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&slotRecord{})
}

// slotRecord mirrors the gormkv slot adapter.
type slotRecord struct {
	Key       string    `gorm:"primaryKey;column:slot_key;size:191"`
	Payload   []byte    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (slotRecord) TableName() string { return "storage_slots" }
