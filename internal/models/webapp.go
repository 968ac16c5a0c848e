// internal/models/webapp.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Webapp struct {
	BaseModel
	CreatorID        uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null;index"`
	Name             string         `json:"name" gorm:"not null"`
	Developer        string         `json:"developer"`
	DescriptionShort string         `json:"description_short" gorm:"not null"`
	DescriptionLong  string         `json:"description_long"`
	URL              string         `json:"url" gorm:"uniqueIndex;not null"`
	GithubURL        string         `json:"github_url"`
	VideoURL         string         `json:"video_url"`
	ImageURL         string         `json:"image_url"`
	Category         string         `json:"category" gorm:"not null;index"`
	Tags             pq.StringArray `json:"tags" gorm:"type:text[];default:'{}'"`
	Status           WebappStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending_review'"`
	TrustScore       int            `json:"trust_score" gorm:"not null;default:0"`

	// Denormalized aggregates, maintained by recount statements.
	AvgRating    float64 `json:"avg_rating" gorm:"not null;default:0"`
	ReviewsCount int64   `json:"reviews_count" gorm:"not null;default:0"`
	ViewsCount   int64   `json:"views_count" gorm:"not null;default:0"`
	ClicksCount  int64   `json:"clicks_count" gorm:"not null;default:0"`
	SharesCount  int64   `json:"shares_count" gorm:"not null;default:0"`

	IsTrending bool `json:"is_trending" gorm:"default:false"`
	IsFeatured bool `json:"is_featured" gorm:"default:false"`
	IsNew      bool `json:"is_new" gorm:"default:true"`

	Creator  *User           `json:"creator,omitempty" gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
	Reviews  []Review        `json:"reviews,omitempty" gorm:"foreignKey:WebappID"`
	Versions []WebappVersion `json:"versions,omitempty" gorm:"foreignKey:WebappID"`
}

type WebappVersion struct {
	BaseModel
	WebappID  uuid.UUID `json:"webapp_id" gorm:"type:uuid;not null;index"`
	Version   string    `json:"version" gorm:"not null"`
	Changelog string    `json:"changelog"`

	Webapp *Webapp `json:"-" gorm:"foreignKey:WebappID;constraint:OnDelete:CASCADE"`
}
