// internal/services/engagement_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
)

// EngagementService records view, click and share events and keeps the
// denormalized counters on webapps in sync. Every recount is a single
// UPDATE with a subselect, so concurrent writers converge on the true
// count without read-modify-write races.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

// TrackView records a unique view per (webapp, user). Repeat views are
// absorbed by the unique index and the recount leaves the counter as-is.
func (s *EngagementService) TrackView(webappID, userID uuid.UUID) error {
	if err := s.ensureWebappExists(webappID); err != nil {
		return err
	}

	view := models.WebappView{WebappID: webappID, UserID: userID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&view).Error
	if err != nil {
		return err
	}

	return s.recountViews(webappID)
}

func (s *EngagementService) TrackClick(webappID uuid.UUID, userID *uuid.UUID, source string) error {
	if err := s.ensureWebappExists(webappID); err != nil {
		return err
	}

	click := models.WebappClick{WebappID: webappID, UserID: userID, Source: source}
	if err := s.db.Create(&click).Error; err != nil {
		return err
	}

	return s.db.Exec(
		`UPDATE webapps SET clicks_count = (SELECT COUNT(*) FROM webapp_clicks WHERE webapp_id = ?) WHERE id = ?`,
		webappID, webappID,
	).Error
}

func (s *EngagementService) TrackShare(webappID uuid.UUID, userID *uuid.UUID, method string) error {
	if err := s.ensureWebappExists(webappID); err != nil {
		return err
	}

	share := models.WebappShare{WebappID: webappID, UserID: userID, Method: method}
	if err := s.db.Create(&share).Error; err != nil {
		return err
	}

	return s.db.Exec(
		`UPDATE webapps SET shares_count = (SELECT COUNT(*) FROM webapp_shares WHERE webapp_id = ?) WHERE id = ?`,
		webappID, webappID,
	).Error
}

func (s *EngagementService) recountViews(webappID uuid.UUID) error {
	return s.db.Exec(
		`UPDATE webapps SET views_count = (SELECT COUNT(*) FROM webapp_views WHERE webapp_id = ?) WHERE id = ?`,
		webappID, webappID,
	).Error
}

// RecountRating refreshes avg_rating and reviews_count from the reviews
// table. Called after review inserts and vote changes.
func (s *EngagementService) RecountRating(webappID uuid.UUID) error {
	return s.db.Exec(
		`UPDATE webapps SET
			avg_rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE webapp_id = ?),
			reviews_count = (SELECT COUNT(*) FROM reviews WHERE webapp_id = ?)
		WHERE id = ?`,
		webappID, webappID, webappID,
	).Error
}

// RecountReviewVotes refreshes the helpful tallies on a single review.
func (s *EngagementService) RecountReviewVotes(reviewID uuid.UUID) error {
	return s.db.Exec(
		`UPDATE reviews SET
			helpful_count = (SELECT COUNT(*) FROM review_votes WHERE review_id = ? AND vote_type = 'helpful'),
			not_helpful_count = (SELECT COUNT(*) FROM review_votes WHERE review_id = ? AND vote_type = 'not_helpful')
		WHERE id = ?`,
		reviewID, reviewID, reviewID,
	).Error
}

func (s *EngagementService) ensureWebappExists(webappID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Webapp{}).Where("id = ?", webappID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: webapp not found", apperror.ErrNotFound)
	}
	return nil
}
