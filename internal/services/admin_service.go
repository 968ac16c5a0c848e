// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
	"github.com/nexushub/webhub-backend/internal/utils"
)

// AdminService backs the stateless moderation surface. Every call is
// already authenticated by the admin key middleware.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type AdminWebappFilter struct {
	Status     string
	Category   string
	Pagination utils.PaginationParams
}

// ListWebapps returns webapps of every status, unlike the public listing.
func (s *AdminService) ListWebapps(filter AdminWebappFilter) ([]models.Webapp, int64, error) {
	query := s.db.Model(&models.Webapp{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var webapps []models.Webapp
	err := utils.ApplyPagination(query.Preload("Creator").Order("created_at DESC"), filter.Pagination).
		Find(&webapps).Error
	if err != nil {
		return nil, 0, err
	}
	return webapps, total, nil
}

// ApproveWebapp flips a pending submission into the public catalog.
func (s *AdminService) ApproveWebapp(id uuid.UUID) (*models.Webapp, error) {
	var webapp models.Webapp
	if err := s.db.First(&webapp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: webapp not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if webapp.Status != models.WebappStatusApproved {
		if err := s.db.Model(&webapp).Update("status", models.WebappStatusApproved).Error; err != nil {
			return nil, err
		}
		webapp.Status = models.WebappStatusApproved
	}
	return &webapp, nil
}

// DeleteWebapp hard-deletes any webapp regardless of owner. The FK
// cascades remove its events, reviews, versions and collection rows.
func (s *AdminService) DeleteWebapp(id uuid.UUID) error {
	result := s.db.Delete(&models.Webapp{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: webapp not found", apperror.ErrNotFound)
	}

	logrus.WithField("webapp_id", id).Info("webapp removed by moderation")
	return nil
}

type DashboardStats struct {
	TotalWebapps   int64 `json:"total_webapps"`
	PendingWebapps int64 `json:"pending_webapps"`
	TotalUsers     int64 `json:"total_users"`
	TotalReviews   int64 `json:"total_reviews"`
	PendingReports int64 `json:"pending_reports"`
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalWebapps, s.db.Model(&models.Webapp{})},
		{&stats.PendingWebapps, s.db.Model(&models.Webapp{}).Where("status = ?", models.WebappStatusPendingReview)},
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.TotalReviews, s.db.Model(&models.Review{})},
		{&stats.PendingReports, s.db.Model(&models.Report{}).Where("status = ?", models.ReportStatusPending)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return &stats, nil
}
