// internal/services/report_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
	"github.com/nexushub/webhub-backend/internal/utils"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type CreateReportRequest struct {
	TargetType string `json:"target_type" binding:"required"`
	TargetID   string `json:"target_id" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

func (s *ReportService) Create(reporterID uuid.UUID, req *CreateReportRequest) (*models.Report, error) {
	targetType := models.ReportTargetType(req.TargetType)
	if !targetType.Valid() {
		return nil, fmt.Errorf("%w: target_type must be webapp, review, user or collection", apperror.ErrInvalidInput)
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return nil, fmt.Errorf("%w: target_id is not a valid id", apperror.ErrInvalidInput)
	}

	reason := utils.SanitizeString(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", apperror.ErrInvalidInput)
	}

	report := &models.Report{
		ReporterID: reporterID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
		Status:     models.ReportStatusPending,
	}
	if err := s.db.Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

type ListReportsParams struct {
	Status     string
	Pagination utils.PaginationParams
}

func (s *ReportService) List(params ListReportsParams) ([]models.Report, int64, error) {
	query := s.db.Model(&models.Report{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := utils.ApplyPagination(query.Preload("Reporter").Order("created_at DESC"), params.Pagination).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Resolve closes a report. Resolution is one-way; a resolved report is
// never reopened.
func (s *ReportService) Resolve(id uuid.UUID, adminNotes string) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"status":      models.ReportStatusResolved,
		"admin_notes": utils.SanitizeString(adminNotes),
		"resolved_at": gorm.Expr("NOW()"),
	}
	if err := s.db.Model(&report).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}
