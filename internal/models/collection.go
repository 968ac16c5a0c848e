// internal/models/collection.go
package models

import "github.com/google/uuid"

type Collection struct {
	BaseModel
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public" gorm:"default:false;index"`

	ItemsCount int64  `json:"items_count" gorm:"-"`
	OwnerName  string `json:"owner_name,omitempty" gorm:"-"`

	User  *User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items []CollectionItem `json:"items,omitempty" gorm:"foreignKey:CollectionID"`
}

// CollectionItem membership is idempotent: one row per (collection, webapp),
// repeat adds dropped via ON CONFLICT DO NOTHING.
type CollectionItem struct {
	BaseModel
	CollectionID uuid.UUID `json:"collection_id" gorm:"type:uuid;not null;uniqueIndex:idx_collection_items_pair"`
	WebappID     uuid.UUID `json:"webapp_id" gorm:"type:uuid;not null;uniqueIndex:idx_collection_items_pair"`

	Collection *Collection `json:"-" gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	Webapp     *Webapp     `json:"webapp,omitempty" gorm:"foreignKey:WebappID;constraint:OnDelete:CASCADE"`
}
