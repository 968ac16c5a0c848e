// internal/services/badge_refresh_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/models"
)

type BadgeRefreshTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *BadgeService
}

func TestBadgeRefreshSuite(t *testing.T) {
	suite.Run(t, new(BadgeRefreshTestSuite))
}

func (s *BadgeRefreshTestSuite) SetupSuite() {
	s.db = setupTestDB(s.T())
	s.service = NewBadgeService(s.db)
}

func (s *BadgeRefreshTestSuite) SetupTest() {
	truncateAll(s.T(), s.db)
}

func (s *BadgeRefreshTestSuite) TestRefreshAwardsVerifiedCreator() {
	user := createTestUser(s.T(), s.db, "maker@example.com")
	// backdate the account past the age threshold
	s.Require().NoError(s.db.Model(user).Update("created_at", time.Now().Add(-40*24*time.Hour)).Error)
	s.Require().NoError(s.db.First(user, "id = ?", user.ID).Error)

	for i := 0; i < 3; i++ {
		createTestWebapp(s.T(), s.db, user.ID)
	}

	earned, err := s.service.Refresh(user)
	s.Require().NoError(err)
	s.Equal([]string{models.BadgeVerifiedCreator}, earned)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, "id = ?", user.ID).Error)
	s.Contains([]string(stored.Badges), models.BadgeVerifiedCreator)

	// a second refresh earns nothing new
	earned, err = s.service.Refresh(&stored)
	s.Require().NoError(err)
	s.Empty(earned)
}

func (s *BadgeRefreshTestSuite) TestRefreshAwardsTesterBadge() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	tester := createTestUser(s.T(), s.db, "tester@example.com")

	for i := 0; i < 10; i++ {
		webapp := createTestWebapp(s.T(), s.db, owner.ID)
		review := models.Review{WebappID: webapp.ID, UserID: tester.ID, Rating: 4}
		s.Require().NoError(s.db.Create(&review).Error)
	}

	earned, err := s.service.Refresh(tester)
	s.Require().NoError(err)
	s.Equal([]string{models.BadgeBeginnerTester}, earned)
}

func (s *BadgeRefreshTestSuite) TestCollectStatsHelpfulRatio() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	tester := createTestUser(s.T(), s.db, "tester@example.com")

	webapp := createTestWebapp(s.T(), s.db, owner.ID)
	review := models.Review{WebappID: webapp.ID, UserID: tester.ID, Rating: 4}
	s.Require().NoError(s.db.Create(&review).Error)

	for _, vt := range []models.VoteType{models.VoteTypeHelpful, models.VoteTypeHelpful, models.VoteTypeNotHelpful} {
		voter := createTestUser(s.T(), s.db, uuid.NewString()+"@example.com")
		vote := models.ReviewVote{ReviewID: review.ID, UserID: voter.ID, VoteType: vt}
		s.Require().NoError(s.db.Create(&vote).Error)
	}

	stats, err := s.service.CollectStats(tester)
	s.Require().NoError(err)
	s.Equal(int64(1), stats.ReviewsCount)
	s.InDelta(2.0/3.0, stats.HelpfulRatio, 0.001)
}
