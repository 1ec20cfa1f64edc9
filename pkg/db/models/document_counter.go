package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentCounter is the per-(tenant, series) sequence row behind document
// numbering. The row is locked and incremented inside the posting
// transaction, which is what keeps numbers unique under concurrent sales.
type DocumentCounter struct {
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;primaryKey"`
	Series    string    `gorm:"column:series;primaryKey"`
	LastSeq   int64     `gorm:"column:last_seq;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
