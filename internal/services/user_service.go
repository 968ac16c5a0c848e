// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
)

type UserService struct {
	db           *gorm.DB
	badgeService *BadgeService
}

func NewUserService(db *gorm.DB, badgeService *BadgeService) *UserService {
	return &UserService{db: db, badgeService: badgeService}
}

type UserProfile struct {
	User         *models.User `json:"user"`
	WebappsCount int64        `json:"webapps_count"`
	ReviewsCount int64        `json:"reviews_count"`
	NewBadges    []string     `json:"new_badges,omitempty"`
}

// GetProfile loads a user together with live stats. Badge eligibility is
// refreshed on the way; a refresh failure degrades to the stored set.
func (s *UserService) GetProfile(id uuid.UUID) (*UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	newBadges, err := s.badgeService.Refresh(&user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Warn("badge refresh failed")
	}

	stats, err := s.badgeService.CollectStats(&user)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		User:         &user,
		WebappsCount: stats.WebappsCount,
		ReviewsCount: stats.ReviewsCount,
		NewBadges:    newBadges,
	}, nil
}

// UpdateAvatar points the user's profile at a freshly uploaded image URL.
func (s *UserService) UpdateAvatar(id uuid.UUID, avatarURL string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Update("avatar_url", avatarURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user not found", apperror.ErrNotFound)
	}
	return nil
}

type PlatformStats struct {
	WebappsCount int64 `json:"webapps_count"`
	UsersCount   int64 `json:"users_count"`
	ReviewsCount int64 `json:"reviews_count"`
}

func (s *UserService) GetPlatformStats() (*PlatformStats, error) {
	var stats PlatformStats

	if err := s.db.Model(&models.Webapp{}).
		Where("status = ?", models.WebappStatusApproved).
		Count(&stats.WebappsCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Count(&stats.UsersCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Review{}).Count(&stats.ReviewsCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
