// internal/services/webapp_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
	"github.com/nexushub/webhub-backend/internal/utils"
)

type WebappService struct {
	db         *gorm.DB
	engagement *EngagementService
}

func NewWebappService(db *gorm.DB, engagement *EngagementService) *WebappService {
	return &WebappService{db: db, engagement: engagement}
}

type CreateWebappRequest struct {
	Name             string `json:"name" binding:"required"`
	Developer        string `json:"developer"`
	DescriptionShort string `json:"description_short" binding:"required"`
	DescriptionLong  string `json:"description_long"`
	URL              string `json:"url" binding:"required"`
	GithubURL        string `json:"github_url"`
	VideoURL         string `json:"video_url"`
	ImageURL         string `json:"image_url"`
	Category         string `json:"category" binding:"required"`
	Tags             string `json:"tags"`
}

type UpdateWebappRequest struct {
	Name             string `json:"name" binding:"required"`
	Developer        string `json:"developer"`
	DescriptionShort string `json:"description_short" binding:"required"`
	DescriptionLong  string `json:"description_long"`
	URL              string `json:"url" binding:"required"`
	GithubURL        string `json:"github_url"`
	VideoURL         string `json:"video_url"`
	ImageURL         string `json:"image_url"`
	Category         string `json:"category" binding:"required"`
	Tags             string `json:"tags"`
	Version          string `json:"version"`
	Changelog        string `json:"changelog"`
}

type ListWebappsParams struct {
	Category string
	Search   string
	Sort     string
	Trending bool
	New      bool
	Limit    int
}

type CreateWebappResult struct {
	Webapp           *models.Webapp `json:"webapp"`
	TrustScore       int            `json:"trust_score"`
	RequiresApproval bool           `json:"requires_approval"`
}

// Create validates, sanitizes, scores and stores a submission in one pass.
// The trust verdict decides whether it is publicly visible immediately.
func (s *WebappService) Create(creatorID uuid.UUID, req *CreateWebappRequest) (*CreateWebappResult, []utils.ValidationError, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Developer = utils.SanitizeString(req.Developer)
	req.DescriptionShort = utils.SanitizeString(req.DescriptionShort)
	req.DescriptionLong = utils.SanitizeString(req.DescriptionLong)
	req.URL = strings.TrimSpace(req.URL)

	validationErrors := utils.ValidateWebappSubmission(utils.WebappSubmission{
		Name:             req.Name,
		Category:         req.Category,
		DescriptionShort: req.DescriptionShort,
		URL:              req.URL,
		GithubURL:        req.GithubURL,
		VideoURL:         req.VideoURL,
	})
	if len(validationErrors) > 0 {
		return nil, validationErrors, nil
	}

	var creator models.User
	if err := s.db.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, nil, err
	}

	tags := utils.ParseTags(req.Tags)
	score := CalculateTrustScore(req, tags, &creator)
	status := StatusForScore(score)

	developer := req.Developer
	if developer == "" {
		developer = creator.Name
	}

	webapp := &models.Webapp{
		CreatorID:        creatorID,
		Name:             req.Name,
		Developer:        developer,
		DescriptionShort: req.DescriptionShort,
		DescriptionLong:  req.DescriptionLong,
		URL:              req.URL,
		GithubURL:        req.GithubURL,
		VideoURL:         req.VideoURL,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
		Tags:             pq.StringArray(tags),
		Status:           status,
		TrustScore:       score,
	}

	if err := s.db.Create(webapp).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, nil, fmt.Errorf("%w: a webapp with this URL is already listed", apperror.ErrConflict)
		}
		return nil, nil, err
	}

	return &CreateWebappResult{
		Webapp:           webapp,
		TrustScore:       score,
		RequiresApproval: status == models.WebappStatusPendingReview,
	}, nil, nil
}

// List returns approved webapps only, filtered and sorted.
func (s *WebappService) List(params ListWebappsParams) ([]models.Webapp, error) {
	query := s.db.Model(&models.Webapp{}).Where("status = ?", models.WebappStatusApproved)

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Trending {
		query = query.Where("is_trending = ?", true)
	}
	if params.New {
		query = query.Where("is_new = ?", true)
	}
	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description_short) LIKE ? OR EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE t LIKE ?)",
			like, like, like,
		)
	}

	switch params.Sort {
	case "rating":
		query = query.Order("avg_rating DESC, reviews_count DESC")
	case "new":
		query = query.Order("created_at DESC")
	case "trending":
		query = query.Order("views_count DESC, clicks_count DESC")
	default:
		query = query.Order("created_at DESC")
	}

	limit := params.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var webapps []models.Webapp
	if err := query.Limit(limit).Find(&webapps).Error; err != nil {
		return nil, err
	}
	return webapps, nil
}

// Get loads a webapp of any status together with its reviews. When a
// viewer is known the read also counts as a view; that tracking is best
// effort and never fails the read.
func (s *WebappService) Get(id uuid.UUID, viewerID *uuid.UUID) (*models.Webapp, error) {
	var webapp models.Webapp
	err := s.db.
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.User").
		First(&webapp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: webapp not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if viewerID != nil {
		if err := s.engagement.TrackView(id, *viewerID); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"webapp_id": id,
				"user_id":   *viewerID,
			}).Warn("view tracking failed")
		} else {
			// reflect the possibly bumped counter without rereading
			var count int64
			if s.db.Model(&models.WebappView{}).Where("webapp_id = ?", id).Count(&count).Error == nil {
				webapp.ViewsCount = count
			}
		}
	}

	return &webapp, nil
}

// Update lets the owner revise a listing. A version string in the request
// appends an entry to the version history.
func (s *WebappService) Update(id, userID uuid.UUID, req *UpdateWebappRequest) (*models.Webapp, []utils.ValidationError, error) {
	var webapp models.Webapp
	if err := s.db.First(&webapp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: webapp not found", apperror.ErrNotFound)
		}
		return nil, nil, err
	}

	if webapp.CreatorID != userID {
		return nil, nil, fmt.Errorf("%w: not the owner of this webapp", apperror.ErrForbidden)
	}

	req.Name = utils.SanitizeString(req.Name)
	req.Developer = utils.SanitizeString(req.Developer)
	req.DescriptionShort = utils.SanitizeString(req.DescriptionShort)
	req.DescriptionLong = utils.SanitizeString(req.DescriptionLong)
	req.URL = strings.TrimSpace(req.URL)

	validationErrors := utils.ValidateWebappSubmission(utils.WebappSubmission{
		Name:             req.Name,
		Category:         req.Category,
		DescriptionShort: req.DescriptionShort,
		URL:              req.URL,
		GithubURL:        req.GithubURL,
		VideoURL:         req.VideoURL,
	})
	if len(validationErrors) > 0 {
		return nil, validationErrors, nil
	}

	updates := map[string]interface{}{
		"name":              req.Name,
		"developer":         req.Developer,
		"description_short": req.DescriptionShort,
		"description_long":  req.DescriptionLong,
		"url":               req.URL,
		"github_url":        req.GithubURL,
		"video_url":         req.VideoURL,
		"image_url":         req.ImageURL,
		"category":          req.Category,
		"tags":              pq.StringArray(utils.ParseTags(req.Tags)),
	}
	if err := s.db.Model(&webapp).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, nil, fmt.Errorf("%w: a webapp with this URL is already listed", apperror.ErrConflict)
		}
		return nil, nil, err
	}

	if req.Version != "" {
		version := models.WebappVersion{
			WebappID:  webapp.ID,
			Version:   utils.SanitizeString(req.Version),
			Changelog: utils.SanitizeString(req.Changelog),
		}
		if err := s.db.Create(&version).Error; err != nil {
			return nil, nil, err
		}
	}

	return &webapp, nil, nil
}

// Delete removes the owner's webapp after a password re-confirmation.
// FK cascades take the events, reviews, versions and collection
// memberships with it.
func (s *WebappService) Delete(id, userID uuid.UUID, password string) error {
	var webapp models.Webapp
	if err := s.db.First(&webapp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: webapp not found", apperror.ErrNotFound)
		}
		return err
	}

	if webapp.CreatorID != userID {
		return fmt.Errorf("%w: not the owner of this webapp", apperror.ErrForbidden)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	if !user.CheckPassword(password) {
		return fmt.Errorf("%w: password confirmation failed", apperror.ErrUnauthorized)
	}

	return s.db.Delete(&webapp).Error
}

func (s *WebappService) ListByCreator(creatorID uuid.UUID) ([]models.Webapp, error) {
	var webapps []models.Webapp
	err := s.db.Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&webapps).Error
	return webapps, err
}

func (s *WebappService) GetVersions(webappID uuid.UUID) ([]models.WebappVersion, error) {
	var count int64
	if err := s.db.Model(&models.Webapp{}).Where("id = ?", webappID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: webapp not found", apperror.ErrNotFound)
	}

	var versions []models.WebappVersion
	err := s.db.Where("webapp_id = ?", webappID).
		Order("created_at DESC").
		Find(&versions).Error
	return versions, err
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// PopularTags returns the most used tags across approved webapps.
func (s *WebappService) PopularTags(limit int) ([]TagCount, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}

	var tags []TagCount
	err := s.db.Raw(
		`SELECT t AS tag, COUNT(*) AS count
		 FROM webapps, unnest(tags) AS t
		 WHERE status = ?
		 GROUP BY t
		 ORDER BY count DESC, t ASC
		 LIMIT ?`,
		models.WebappStatusApproved, limit,
	).Scan(&tags).Error
	return tags, err
}
