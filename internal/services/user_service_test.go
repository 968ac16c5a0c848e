// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupSuite() {
	s.db = setupTestDB(s.T())
	s.service = NewUserService(s.db, NewBadgeService(s.db))
}

func (s *UserServiceTestSuite) SetupTest() {
	truncateAll(s.T(), s.db)
}

func (s *UserServiceTestSuite) TestGetProfileStats() {
	user := createTestUser(s.T(), s.db, "profile@example.com")
	createTestWebapp(s.T(), s.db, user.ID)
	createTestWebapp(s.T(), s.db, user.ID)

	profile, err := s.service.GetProfile(user.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), profile.WebappsCount)
	s.Equal(int64(0), profile.ReviewsCount)
}

func (s *UserServiceTestSuite) TestGetProfileMissingUser() {
	_, err := s.service.GetProfile(uuid.New())
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *UserServiceTestSuite) TestUpdateAvatar() {
	user := createTestUser(s.T(), s.db, "avatar@example.com")

	url := "https://cdn.example.com/avatars/20260830_abcd1234.png"
	s.Require().NoError(s.service.UpdateAvatar(user.ID, url))

	var stored models.User
	s.Require().NoError(s.db.First(&stored, "id = ?", user.ID).Error)
	s.Equal(url, stored.AvatarURL)
}

func (s *UserServiceTestSuite) TestUpdateAvatarMissingUser() {
	err := s.service.UpdateAvatar(uuid.New(), "https://cdn.example.com/avatars/x.png")
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *UserServiceTestSuite) TestPlatformStatsCountsApprovedOnly() {
	user := createTestUser(s.T(), s.db, "stats@example.com")
	createTestWebapp(s.T(), s.db, user.ID)
	pending := createTestWebapp(s.T(), s.db, user.ID)
	s.Require().NoError(s.db.Model(pending).Update("status", models.WebappStatusPendingReview).Error)

	stats, err := s.service.GetPlatformStats()
	s.Require().NoError(err)
	s.Equal(int64(1), stats.WebappsCount)
	s.Equal(int64(1), stats.UsersCount)
}
