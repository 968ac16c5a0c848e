// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db            *gorm.DB
	service       *ReviewService
	notifications *NotificationService
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}

func (s *ReviewServiceTestSuite) SetupSuite() {
	s.db = setupTestDB(s.T())
	engagement := NewEngagementService(s.db)
	s.notifications = NewNotificationService(s.db)
	s.service = NewReviewService(s.db, engagement, s.notifications)
}

func (s *ReviewServiceTestSuite) SetupTest() {
	truncateAll(s.T(), s.db)
}

func (s *ReviewServiceTestSuite) TestCreateRecountsAndNotifiesOwner() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	reviewer := createTestUser(s.T(), s.db, "reviewer@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	review, err := s.service.Create(webapp.ID, reviewer.ID, &CreateReviewRequest{
		Rating:  4,
		Comment: "  solid <b>app</b>  ",
	})
	s.Require().NoError(err)
	s.Equal(4, review.Rating)
	s.Equal("solid bapp/b", review.Comment)

	var stored models.Webapp
	s.Require().NoError(s.db.First(&stored, "id = ?", webapp.ID).Error)
	s.Equal(int64(1), stored.ReviewsCount)
	s.InDelta(4.0, stored.AvgRating, 0.001)

	page, err := s.notifications.List(owner.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(page.Notifications, 1)
	s.Equal(models.NotificationTypeNewReview, page.Notifications[0].Type)
	s.Equal(1, page.UnreadCount)
}

func (s *ReviewServiceTestSuite) TestSelfReviewSkipsNotification() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	_, err := s.service.Create(webapp.ID, owner.ID, &CreateReviewRequest{Rating: 5})
	s.Require().NoError(err)

	page, err := s.notifications.List(owner.ID, 10)
	s.Require().NoError(err)
	s.Empty(page.Notifications)
}

func (s *ReviewServiceTestSuite) TestDuplicateReviewConflicts() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	reviewer := createTestUser(s.T(), s.db, "reviewer@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	_, err := s.service.Create(webapp.ID, reviewer.ID, &CreateReviewRequest{Rating: 4})
	s.Require().NoError(err)

	_, err = s.service.Create(webapp.ID, reviewer.ID, &CreateReviewRequest{Rating: 2})
	s.ErrorIs(err, apperror.ErrConflict)

	// the rejected attempt leaves both the rows and the counters as the
	// first review committed them
	var stored models.Webapp
	s.Require().NoError(s.db.First(&stored, "id = ?", webapp.ID).Error)
	s.Equal(int64(1), stored.ReviewsCount)
	s.InDelta(4.0, stored.AvgRating, 0.001)

	var rows int64
	s.Require().NoError(s.db.Model(&models.Review{}).Where("webapp_id = ?", webapp.ID).Count(&rows).Error)
	s.Equal(int64(1), rows)
}

func (s *ReviewServiceTestSuite) TestRatingIsClamped() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	reviewer := createTestUser(s.T(), s.db, "reviewer@example.com")
	another := createTestUser(s.T(), s.db, "another@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	review, err := s.service.Create(webapp.ID, reviewer.ID, &CreateReviewRequest{Rating: 9})
	s.Require().NoError(err)
	s.Equal(5, review.Rating)

	review, err = s.service.Create(webapp.ID, another.ID, &CreateReviewRequest{Rating: -3})
	s.Require().NoError(err)
	s.Equal(1, review.Rating)
}

func (s *ReviewServiceTestSuite) TestMissingWebappIsNotFound() {
	reviewer := createTestUser(s.T(), s.db, "reviewer@example.com")

	_, err := s.service.Create(uuid.New(), reviewer.ID, &CreateReviewRequest{Rating: 3})
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ReviewServiceTestSuite) TestVoteUpsertReplaces() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	reviewer := createTestUser(s.T(), s.db, "reviewer@example.com")
	voter := createTestUser(s.T(), s.db, "voter@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	review, err := s.service.Create(webapp.ID, reviewer.ID, &CreateReviewRequest{Rating: 4})
	s.Require().NoError(err)

	updated, err := s.service.Vote(review.ID, voter.ID, "helpful")
	s.Require().NoError(err)
	s.Equal(int64(1), updated.HelpfulCount)
	s.Equal(int64(0), updated.NotHelpfulCount)

	// changing the vote replaces it rather than adding a second row
	updated, err = s.service.Vote(review.ID, voter.ID, "not_helpful")
	s.Require().NoError(err)
	s.Equal(int64(0), updated.HelpfulCount)
	s.Equal(int64(1), updated.NotHelpfulCount)

	// repeating the same vote changes nothing
	updated, err = s.service.Vote(review.ID, voter.ID, "not_helpful")
	s.Require().NoError(err)
	s.Equal(int64(0), updated.HelpfulCount)
	s.Equal(int64(1), updated.NotHelpfulCount)
}

func (s *ReviewServiceTestSuite) TestVoteValidation() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	reviewer := createTestUser(s.T(), s.db, "reviewer@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	review, err := s.service.Create(webapp.ID, reviewer.ID, &CreateReviewRequest{Rating: 4})
	s.Require().NoError(err)

	_, err = s.service.Vote(review.ID, reviewer.ID, "meh")
	s.ErrorIs(err, apperror.ErrInvalidInput)
}
