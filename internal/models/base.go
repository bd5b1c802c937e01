package models

import (
	"time"

	"patrimonio/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. Rows are hard-deleted, so
// there is no deleted_at column.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every persisted model in dependency order. It feeds AutoMigrate
// for SQLite databases and the test harness.
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&Account{},
		&Transaction{},
		&Asset{},
		&Vehicle{},
		&Refueling{},
		&Maintenance{},
		&AuditLog{},
	}
}
