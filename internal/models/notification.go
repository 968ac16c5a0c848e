// internal/models/notification.go
package models

import "github.com/google/uuid"

type Notification struct {
	BaseModel
	UserID  uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	Type    NotificationType `json:"type" gorm:"type:varchar(30);not null"`
	Title   string           `json:"title" gorm:"not null"`
	Message string           `json:"message"`
	Data    JSONB            `json:"data,omitempty" gorm:"type:jsonb"`
	Read    bool             `json:"read" gorm:"default:false"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
