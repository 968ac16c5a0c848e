// internal/services/engagement_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
)

type EngagementServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *EngagementService
}

func TestEngagementServiceSuite(t *testing.T) {
	suite.Run(t, new(EngagementServiceTestSuite))
}

func (s *EngagementServiceTestSuite) SetupSuite() {
	s.db = setupTestDB(s.T())
	s.service = NewEngagementService(s.db)
}

func (s *EngagementServiceTestSuite) SetupTest() {
	truncateAll(s.T(), s.db)
}

func (s *EngagementServiceTestSuite) webappCounters(id uuid.UUID) models.Webapp {
	var webapp models.Webapp
	s.Require().NoError(s.db.First(&webapp, "id = ?", id).Error)
	return webapp
}

func (s *EngagementServiceTestSuite) TestViewDeduplication() {
	user := createTestUser(s.T(), s.db, "viewer@example.com")
	webapp := createTestWebapp(s.T(), s.db, user.ID)

	s.Require().NoError(s.service.TrackView(webapp.ID, user.ID))
	s.Require().NoError(s.service.TrackView(webapp.ID, user.ID))
	s.Require().NoError(s.service.TrackView(webapp.ID, user.ID))

	s.Equal(int64(1), s.webappCounters(webapp.ID).ViewsCount)

	other := createTestUser(s.T(), s.db, "other@example.com")
	s.Require().NoError(s.service.TrackView(webapp.ID, other.ID))

	s.Equal(int64(2), s.webappCounters(webapp.ID).ViewsCount)
}

func (s *EngagementServiceTestSuite) TestClicksAreUnlimited() {
	user := createTestUser(s.T(), s.db, "clicker@example.com")
	webapp := createTestWebapp(s.T(), s.db, user.ID)

	s.Require().NoError(s.service.TrackClick(webapp.ID, &user.ID, "listing"))
	s.Require().NoError(s.service.TrackClick(webapp.ID, &user.ID, "listing"))
	s.Require().NoError(s.service.TrackClick(webapp.ID, nil, "detail"))

	s.Equal(int64(3), s.webappCounters(webapp.ID).ClicksCount)
}

func (s *EngagementServiceTestSuite) TestSharesAreCounted() {
	user := createTestUser(s.T(), s.db, "sharer@example.com")
	webapp := createTestWebapp(s.T(), s.db, user.ID)

	s.Require().NoError(s.service.TrackShare(webapp.ID, &user.ID, "twitter"))
	s.Require().NoError(s.service.TrackShare(webapp.ID, nil, "link"))

	s.Equal(int64(2), s.webappCounters(webapp.ID).SharesCount)
}

func (s *EngagementServiceTestSuite) TestMissingWebappIsNotFound() {
	user := createTestUser(s.T(), s.db, "ghost@example.com")

	err := s.service.TrackView(uuid.New(), user.ID)
	s.ErrorIs(err, apperror.ErrNotFound)

	err = s.service.TrackClick(uuid.New(), nil, "listing")
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *EngagementServiceTestSuite) TestRecountRating() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	for _, rating := range []int{5, 4, 3} {
		reviewer := createTestUser(s.T(), s.db, uuid.NewString()+"@example.com")
		review := models.Review{WebappID: webapp.ID, UserID: reviewer.ID, Rating: rating}
		s.Require().NoError(s.db.Create(&review).Error)
	}

	s.Require().NoError(s.service.RecountRating(webapp.ID))

	counters := s.webappCounters(webapp.ID)
	s.Equal(int64(3), counters.ReviewsCount)
	s.InDelta(4.0, counters.AvgRating, 0.001)
}

func (s *EngagementServiceTestSuite) TestRecountRatingNoReviews() {
	owner := createTestUser(s.T(), s.db, "owner2@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	s.Require().NoError(s.service.RecountRating(webapp.ID))

	counters := s.webappCounters(webapp.ID)
	s.Equal(int64(0), counters.ReviewsCount)
	s.Equal(0.0, counters.AvgRating)
}
