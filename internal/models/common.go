// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// BaseModel contains common fields for all models
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB handles PostgreSQL jsonb columns
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, j)
}

// WebappStatus is assigned once at submission time and only changes
// through moderation.
type WebappStatus string

const (
	WebappStatusApproved      WebappStatus = "approved"
	WebappStatusPendingReview WebappStatus = "pending_review"
)

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
)

type ReportTargetType string

const (
	ReportTargetWebapp     ReportTargetType = "webapp"
	ReportTargetReview     ReportTargetType = "review"
	ReportTargetUser       ReportTargetType = "user"
	ReportTargetCollection ReportTargetType = "collection"
)

func (t ReportTargetType) Valid() bool {
	switch t {
	case ReportTargetWebapp, ReportTargetReview, ReportTargetUser, ReportTargetCollection:
		return true
	}
	return false
}

type VoteType string

const (
	VoteTypeHelpful    VoteType = "helpful"
	VoteTypeNotHelpful VoteType = "not_helpful"
)

func (v VoteType) Valid() bool {
	return v == VoteTypeHelpful || v == VoteTypeNotHelpful
}

type NotificationType string

const (
	NotificationTypeNewReview NotificationType = "new_review"
	NotificationTypeBadge     NotificationType = "badge_earned"
	NotificationTypeSystem    NotificationType = "system"
)
