// internal/models/engagement.go
package models

import "github.com/google/uuid"

// WebappView records at most one view per (webapp, user) pair. Repeat views
// hit the unique index and are dropped with ON CONFLICT DO NOTHING.
type WebappView struct {
	BaseModel
	WebappID uuid.UUID `json:"webapp_id" gorm:"type:uuid;not null;uniqueIndex:idx_webapp_views_webapp_user"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_webapp_views_webapp_user"`

	Webapp *Webapp `json:"-" gorm:"foreignKey:WebappID;constraint:OnDelete:CASCADE"`
	User   *User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// WebappClick is unlimited per pair and may be anonymous.
type WebappClick struct {
	BaseModel
	WebappID uuid.UUID  `json:"webapp_id" gorm:"type:uuid;not null;index"`
	UserID   *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid"`
	Source   string     `json:"source"`

	Webapp *Webapp `json:"-" gorm:"foreignKey:WebappID;constraint:OnDelete:CASCADE"`
}

type WebappShare struct {
	BaseModel
	WebappID uuid.UUID  `json:"webapp_id" gorm:"type:uuid;not null;index"`
	UserID   *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid"`
	Method   string     `json:"method"`

	Webapp *Webapp `json:"-" gorm:"foreignKey:WebappID;constraint:OnDelete:CASCADE"`
}
