// internal/services/collection_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
	"github.com/nexushub/webhub-backend/internal/utils"
)

type CollectionService struct {
	db *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

type CreateCollectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type UpdateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
}

func (s *CollectionService) Create(userID uuid.UUID, req *CreateCollectionRequest) (*models.Collection, error) {
	name := utils.SanitizeString(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperror.ErrInvalidInput)
	}

	collection := &models.Collection{
		UserID:      userID,
		Name:        name,
		Description: utils.SanitizeString(req.Description),
		IsPublic:    req.IsPublic,
	}
	if err := s.db.Create(collection).Error; err != nil {
		return nil, err
	}
	return collection, nil
}

// Get enforces visibility: a private collection is only readable by its
// owner; everyone else gets a forbidden error, not a not-found one.
func (s *CollectionService) Get(id uuid.UUID, viewerID *uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := s.db.First(&collection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: collection not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !collection.IsPublic && (viewerID == nil || *viewerID != collection.UserID) {
		return nil, fmt.Errorf("%w: this collection is private", apperror.ErrForbidden)
	}

	if err := s.attachMeta(&collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

func (s *CollectionService) ListByUser(userID uuid.UUID) ([]models.Collection, error) {
	var collections []models.Collection
	err := s.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}

	for i := range collections {
		if err := s.attachMeta(&collections[i]); err != nil {
			return nil, err
		}
	}
	return collections, nil
}

// ListPublic returns recently touched public collections.
func (s *CollectionService) ListPublic(limit int) ([]models.Collection, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var collections []models.Collection
	err := s.db.Where("is_public = ?", true).
		Preload("User").
		Order("updated_at DESC").
		Limit(limit).
		Find(&collections).Error
	if err != nil {
		return nil, err
	}

	for i := range collections {
		if err := s.attachMeta(&collections[i]); err != nil {
			return nil, err
		}
		if collections[i].User != nil {
			collections[i].OwnerName = collections[i].User.Name
			collections[i].User = nil
		}
	}
	return collections, nil
}

func (s *CollectionService) Update(id, userID uuid.UUID, req *UpdateCollectionRequest) (*models.Collection, error) {
	collection, err := s.getOwned(id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = utils.SanitizeString(req.Name)
	}
	if req.Description != "" {
		updates["description"] = utils.SanitizeString(req.Description)
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if len(updates) > 0 {
		if err := s.db.Model(collection).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return collection, nil
}

func (s *CollectionService) Delete(id, userID uuid.UUID) error {
	collection, err := s.getOwned(id, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(collection).Error
}

// AddItem is idempotent: adding a webapp already in the collection is a
// silent no-op. Any add touches the collection's updated_at so public
// listings surface recently changed collections.
func (s *CollectionService) AddItem(collectionID, userID, webappID uuid.UUID) error {
	collection, err := s.getOwned(collectionID, userID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Webapp{}).Where("id = ?", webappID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: webapp not found", apperror.ErrNotFound)
	}

	item := models.CollectionItem{CollectionID: collectionID, WebappID: webappID}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
		return err
	}

	return s.db.Model(collection).Update("updated_at", gorm.Expr("NOW()")).Error
}

func (s *CollectionService) RemoveItem(collectionID, userID, webappID uuid.UUID) error {
	collection, err := s.getOwned(collectionID, userID)
	if err != nil {
		return err
	}

	result := s.db.Where("collection_id = ? AND webapp_id = ?", collectionID, webappID).
		Delete(&models.CollectionItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: webapp is not in this collection", apperror.ErrNotFound)
	}

	return s.db.Model(collection).Update("updated_at", gorm.Expr("NOW()")).Error
}

// GetItems returns the webapps in a collection, honoring visibility.
func (s *CollectionService) GetItems(collectionID uuid.UUID, viewerID *uuid.UUID) ([]models.CollectionItem, error) {
	if _, err := s.Get(collectionID, viewerID); err != nil {
		return nil, err
	}

	var items []models.CollectionItem
	err := s.db.Where("collection_id = ?", collectionID).
		Preload("Webapp").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *CollectionService) getOwned(id, userID uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := s.db.First(&collection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: collection not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if collection.UserID != userID {
		return nil, fmt.Errorf("%w: not your collection", apperror.ErrForbidden)
	}
	return &collection, nil
}

func (s *CollectionService) attachMeta(collection *models.Collection) error {
	return s.db.Model(&models.CollectionItem{}).
		Where("collection_id = ?", collection.ID).
		Count(&collection.ItemsCount).Error
}
