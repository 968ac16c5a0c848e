// internal/services/trust.go
package services

import (
	"strings"
	"time"

	"github.com/nexushub/webhub-backend/internal/models"
)

// ApprovalThreshold is the trust score at or above which a submission
// goes straight to the public catalog.
const ApprovalThreshold = 30

const trustedAccountAge = 30 * 24 * time.Hour

var shortenerDomains = []string{"bit.ly", "tinyurl.com", "goo.gl", "t.co"}

// CalculateTrustScore rates a submission once, at creation time. The score
// is stored with the webapp and never recomputed; later changes to the
// creator's badges or account age do not feed back into it.
func CalculateTrustScore(req *CreateWebappRequest, tags []string, creator *models.User) int {
	score := 50

	if creator.HasBadge(models.BadgeVerifiedCreator) {
		score += 20
	}
	if creator.AccountAge() >= trustedAccountAge {
		score += 10
	}

	if strings.HasPrefix(req.URL, "https://") {
		score += 10
	}
	if len(req.DescriptionLong) > 100 {
		score += 10
	}
	if req.GithubURL != "" {
		score += 10
	}
	if req.VideoURL != "" {
		score += 5
	}
	if req.ImageURL != "" {
		score += 5
	}

	if len(req.DescriptionShort) < 20 {
		score -= 20
	}
	if len(tags) == 0 {
		score -= 10
	}
	for _, domain := range shortenerDomains {
		if strings.Contains(req.URL, domain) {
			score -= 30
			break
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// StatusForScore maps a trust score to the initial moderation status.
func StatusForScore(score int) models.WebappStatus {
	if score >= ApprovalThreshold {
		return models.WebappStatusApproved
	}
	return models.WebappStatusPendingReview
}
