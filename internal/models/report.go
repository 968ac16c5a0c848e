// internal/models/report.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Report references its target loosely by (type, id); the target may be
// deleted while the report lives on, so no FK constrains TargetID.
type Report struct {
	BaseModel
	ReporterID uuid.UUID        `json:"reporter_id" gorm:"type:uuid;not null;index"`
	TargetType ReportTargetType `json:"target_type" gorm:"type:varchar(20);not null"`
	TargetID   uuid.UUID        `json:"target_id" gorm:"type:uuid;not null"`
	Reason     string           `json:"reason" gorm:"not null"`
	Status     ReportStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	AdminNotes string           `json:"admin_notes"`
	ResolvedAt *time.Time       `json:"resolved_at,omitempty"`

	Reporter *User `json:"reporter,omitempty" gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE"`
}
