// internal/models/review.go
package models

import "github.com/google/uuid"

// Review is unique per (webapp, author). The unique index backs the
// one-review-per-user rule without any read-before-write check.
type Review struct {
	BaseModel
	WebappID uuid.UUID `json:"webapp_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_webapp_user"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_webapp_user"`
	Rating   int       `json:"rating" gorm:"not null"`
	Comment  string    `json:"comment"`

	// Denormalized vote tallies, recomputed after every vote change.
	HelpfulCount    int64 `json:"helpful_count" gorm:"not null;default:0"`
	NotHelpfulCount int64 `json:"not_helpful_count" gorm:"not null;default:0"`

	Webapp *Webapp `json:"-" gorm:"foreignKey:WebappID;constraint:OnDelete:CASCADE"`
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// ReviewVote is an upsert target: one row per (review, voter), vote type
// replaced in place when the voter changes their mind.
type ReviewVote struct {
	BaseModel
	ReviewID uuid.UUID `json:"review_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_votes_review_user"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_votes_review_user"`
	VoteType VoteType  `json:"vote_type" gorm:"type:varchar(20);not null"`

	Review *Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}
