// internal/services/trust_test.go
package services

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/nexushub/webhub-backend/internal/models"
)

func freshCreator() *models.User {
	user := &models.User{Name: "tester"}
	user.CreatedAt = time.Now().Add(-24 * time.Hour)
	return user
}

func baseSubmission() *CreateWebappRequest {
	return &CreateWebappRequest{
		Name:             "Example App",
		DescriptionShort: "A short description long enough to pass",
		URL:              "https://example.com",
		Category:         "productivity",
	}
}

func TestCalculateTrustScoreBareSubmission(t *testing.T) {
	// base 50 + https 10 - no tags 10
	score := CalculateTrustScore(baseSubmission(), nil, freshCreator())
	assert.Equal(t, 50, score)
}

func TestCalculateTrustScoreVerifiedCreatorBonus(t *testing.T) {
	creator := freshCreator()
	creator.Badges = pq.StringArray{models.BadgeVerifiedCreator}

	score := CalculateTrustScore(baseSubmission(), nil, creator)
	assert.Equal(t, 70, score)
}

func TestCalculateTrustScoreAccountAgeBonus(t *testing.T) {
	creator := freshCreator()
	creator.CreatedAt = time.Now().Add(-31 * 24 * time.Hour)

	score := CalculateTrustScore(baseSubmission(), nil, creator)
	assert.Equal(t, 60, score)
}

func TestCalculateTrustScoreRichSubmission(t *testing.T) {
	req := baseSubmission()
	req.DescriptionLong = "An elaborate long description that goes well past the one hundred character mark so the bonus applies here."
	req.GithubURL = "https://github.com/example/app"
	req.VideoURL = "https://youtube.com/watch?v=abc"
	req.ImageURL = "https://cdn.example.com/shot.png"

	// 50 + https 10 + long 10 + github 10 + video 5 + image 5 - no tags 10
	score := CalculateTrustScore(req, nil, freshCreator())
	assert.Equal(t, 80, score)
}

func TestCalculateTrustScoreTagsRemovePenalty(t *testing.T) {
	score := CalculateTrustScore(baseSubmission(), []string{"tools"}, freshCreator())
	assert.Equal(t, 60, score)
}

func TestCalculateTrustScoreShortenerPenalty(t *testing.T) {
	req := baseSubmission()
	req.URL = "https://bit.ly/3abc"

	// 50 + https 10 - no tags 10 - shortener 30
	score := CalculateTrustScore(req, nil, freshCreator())
	assert.Equal(t, 20, score)
}

func TestCalculateTrustScoreShortDescriptionPenalty(t *testing.T) {
	req := baseSubmission()
	req.DescriptionShort = "too short"

	score := CalculateTrustScore(req, nil, freshCreator())
	assert.Equal(t, 30, score)
}

func TestCalculateTrustScoreClampedToZero(t *testing.T) {
	req := baseSubmission()
	req.URL = "http://bit.ly/3abc"
	req.DescriptionShort = "tiny"

	// 50 - short 20 - no tags 10 - shortener 30 = -10, clamped
	score := CalculateTrustScore(req, nil, freshCreator())
	assert.Equal(t, 0, score)
}

func TestCalculateTrustScoreClampedToHundred(t *testing.T) {
	req := baseSubmission()
	req.DescriptionLong = "An elaborate long description that goes well past the one hundred character mark so the bonus applies here."
	req.GithubURL = "https://github.com/example/app"
	req.VideoURL = "https://youtu.be/abc"
	req.ImageURL = "https://cdn.example.com/shot.png"

	creator := freshCreator()
	creator.CreatedAt = time.Now().Add(-90 * 24 * time.Hour)
	creator.Badges = pq.StringArray{models.BadgeVerifiedCreator}

	// 50 + 20 + 10 + 10 + 10 + 10 + 5 + 5 = 120, clamped
	score := CalculateTrustScore(req, []string{"tools", "dev"}, creator)
	assert.Equal(t, 100, score)
}

func TestStatusForScore(t *testing.T) {
	assert.Equal(t, models.WebappStatusApproved, StatusForScore(30))
	assert.Equal(t, models.WebappStatusApproved, StatusForScore(100))
	assert.Equal(t, models.WebappStatusPendingReview, StatusForScore(29))
	assert.Equal(t, models.WebappStatusPendingReview, StatusForScore(0))
}
