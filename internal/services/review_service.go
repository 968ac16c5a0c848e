// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/database"
	"github.com/nexushub/webhub-backend/internal/models"
	"github.com/nexushub/webhub-backend/internal/utils"
)

type ReviewService struct {
	db           *gorm.DB
	engagement   *EngagementService
	notification *NotificationService
}

func NewReviewService(db *gorm.DB, engagement *EngagementService, notification *NotificationService) *ReviewService {
	return &ReviewService{db: db, engagement: engagement, notification: notification}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// Create inserts one review per (webapp, author). The unique index is the
// duplicate check; a second attempt surfaces as a conflict. After insert
// the webapp's rating aggregates are recomputed and the owner notified.
func (s *ReviewService) Create(webappID, userID uuid.UUID, req *CreateReviewRequest) (*models.Review, error) {
	var webapp models.Webapp
	if err := s.db.First(&webapp, "id = ?", webappID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: webapp not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	rating := req.Rating
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}

	review := &models.Review{
		WebappID: webappID,
		UserID:   userID,
		Rating:   rating,
		Comment:  utils.SanitizeString(req.Comment),
	}

	// Insert and recount commit together: a failed recount rolls the
	// review back, so a retry never trips the duplicate check while the
	// counters are stale.
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return NewEngagementService(tx).RecountRating(webappID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: you have already reviewed this webapp", apperror.ErrConflict)
		}
		return nil, err
	}

	// Notify the owner about the new review, unless they wrote it.
	if webapp.CreatorID != userID {
		_, err := s.notification.Create(
			webapp.CreatorID,
			models.NotificationTypeNewReview,
			"New review",
			fmt.Sprintf("%s received a new %d-star review", webapp.Name, rating),
			models.JSONB{
				"webapp_id": webappID.String(),
				"review_id": review.ID.String(),
				"rating":    rating,
			},
		)
		if err != nil {
			logrus.WithError(err).WithField("webapp_id", webappID).Warn("review notification failed")
		}
	}

	return review, nil
}

type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required"`
}

// Vote upserts the caller's vote on a review. Voting again with a
// different type replaces the previous vote; the tallies are recomputed
// either way.
func (s *ReviewService) Vote(reviewID, userID uuid.UUID, voteType string) (*models.Review, error) {
	vt := models.VoteType(voteType)
	if !vt.Valid() {
		return nil, fmt.Errorf("%w: vote_type must be helpful or not_helpful", apperror.ErrInvalidInput)
	}

	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	vote := models.ReviewVote{
		ReviewID: reviewID,
		UserID:   userID,
		VoteType: vt,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"vote_type": vt, "updated_at": gorm.Expr("NOW()")}),
	}).Create(&vote).Error
	if err != nil {
		return nil, err
	}

	if err := s.engagement.RecountReviewVotes(reviewID); err != nil {
		return nil, err
	}

	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key")
}
