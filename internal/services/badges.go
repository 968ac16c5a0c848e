// internal/services/badges.go
package services

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/models"
)

// BadgeStats are the live numbers badge eligibility is judged on.
type BadgeStats struct {
	WebappsCount int64
	ReviewsCount int64
	HelpfulRatio float64
}

// EvaluateBadges returns the badges newly earned given the current set.
// Badges already held are never returned again and never revoked, even if
// the underlying stats later drop below a threshold.
func EvaluateBadges(held []string, accountAge time.Duration, stats BadgeStats) []string {
	has := make(map[string]bool, len(held))
	for _, b := range held {
		has[b] = true
	}

	var earned []string
	add := func(badge string, eligible bool) {
		if eligible && !has[badge] {
			earned = append(earned, badge)
		}
	}

	add(models.BadgeVerifiedCreator, stats.WebappsCount >= 3 && accountAge >= trustedAccountAge)
	add(models.BadgeBeginnerTester, stats.ReviewsCount >= 10)
	add(models.BadgeProTester, stats.ReviewsCount >= 50 && stats.HelpfulRatio >= 0.7)
	add(models.BadgeLegendaryTester, stats.ReviewsCount >= 200 && stats.HelpfulRatio >= 0.8)

	return earned
}

type BadgeService struct {
	db *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{db: db}
}

// CollectStats computes the user's live counters from the source tables.
func (s *BadgeService) CollectStats(user *models.User) (BadgeStats, error) {
	var stats BadgeStats

	if err := s.db.Model(&models.Webapp{}).
		Where("creator_id = ?", user.ID).
		Count(&stats.WebappsCount).Error; err != nil {
		return stats, err
	}

	if err := s.db.Model(&models.Review{}).
		Where("user_id = ?", user.ID).
		Count(&stats.ReviewsCount).Error; err != nil {
		return stats, err
	}

	// Helpful ratio over all votes cast on the user's reviews.
	var votes struct {
		Helpful int64
		Total   int64
	}
	err := s.db.Model(&models.ReviewVote{}).
		Select("COUNT(*) FILTER (WHERE review_votes.vote_type = ?) AS helpful, COUNT(*) AS total", models.VoteTypeHelpful).
		Joins("JOIN reviews ON reviews.id = review_votes.review_id").
		Where("reviews.user_id = ?", user.ID).
		Scan(&votes).Error
	if err != nil {
		return stats, err
	}
	if votes.Total > 0 {
		stats.HelpfulRatio = float64(votes.Helpful) / float64(votes.Total)
	}

	return stats, nil
}

// Refresh evaluates eligibility and appends any newly earned badges to the
// user row. Called opportunistically when a profile is read.
func (s *BadgeService) Refresh(user *models.User) ([]string, error) {
	stats, err := s.CollectStats(user)
	if err != nil {
		return nil, err
	}

	earned := EvaluateBadges(user.Badges, user.AccountAge(), stats)
	if len(earned) == 0 {
		return nil, nil
	}

	user.Badges = append(user.Badges, earned...)
	if err := s.db.Model(user).Update("badges", pq.StringArray(user.Badges)).Error; err != nil {
		return nil, err
	}

	return earned, nil
}
