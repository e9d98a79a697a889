// internal/services/listing_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookxchange/backend/internal/database"
	"github.com/bookxchange/backend/internal/models"
	"github.com/bookxchange/backend/internal/utils"
)

type ListingService struct {
	db     *gorm.DB
	images *ImageService
	log    *logrus.Logger
	now    func() time.Time
}

type CreateListingRequest struct {
	Title       string   `json:"title" validate:"notblank,max=255"`
	Author      string   `json:"author" validate:"notblank,max=255"`
	Condition   string   `json:"condition" validate:"required,condition"`
	Description string   `json:"description" validate:"max=5000"`
	Images      []string `json:"images" validate:"min=1,max=3"`
}

type ListingSearchParams struct {
	utils.PaginationParams
	Condition string `json:"condition,omitempty"`
}

func NewListingService(db *gorm.DB, images *ImageService, log *logrus.Logger) *ListingService {
	return &ListingService{
		db:     db,
		images: images,
		log:    log,
		now:    time.Now,
	}
}

// Create stores a new listing stamped with the owner's current profile
// details.
func (s *ListingService) Create(ctx context.Context, ownerID string, req *CreateListingRequest) (*models.Listing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, newValidationError(err)
	}

	if err := s.images.ValidateAll(req.Images); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	owner, err := findProfile(db, ownerID)
	if err != nil {
		return nil, err
	}

	uploadedAt := s.now()
	images := make(models.Images, len(req.Images))
	for i, data := range req.Images {
		images[i] = models.Image{Data: strings.TrimSpace(data), UploadedAt: uploadedAt}
	}

	listing := &models.Listing{
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		Condition:   models.BookCondition(req.Condition),
		Description: req.Description,
		Images:      images,
		OwnerID:     ownerID,
		OwnerName:   owner.ProfileName,
		OwnerEmail:  owner.Email,
		OwnerPhone:  owner.PhoneNumber,
		IsAvailable: true,
		CreatedAt:   uploadedAt,
	}

	if err := db.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"listing_id": listing.ID,
		"owner_id":   ownerID,
		"images":     len(images),
	}).Info("Listing created")

	return listing, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, notFoundOr(err, ResourceListing)
	}
	return &listing, nil
}

// ListOwnedAvailable returns the owner's listings that are still available.
func (s *ListingService) ListOwnedAvailable(ctx context.Context, ownerID string) ([]models.Listing, error) {
	listings := make([]models.Listing, 0)
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND is_available = ?", ownerID, true).
		Order("created_at").Order("id").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list owned listings: %w", err)
	}
	return listings, nil
}

// ListOthersAvailable returns available listings owned by anyone but ownerID.
func (s *ListingService) ListOthersAvailable(ctx context.Context, ownerID string) ([]models.Listing, error) {
	listings := make([]models.Listing, 0)
	err := s.db.WithContext(ctx).
		Where("owner_id <> ? AND is_available = ?", ownerID, true).
		Order("created_at").Order("id").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available listings: %w", err)
	}
	return listings, nil
}

// SearchOthersAvailable is the paginated form of ListOthersAvailable with a
// case-insensitive title/author filter.
func (s *ListingService) SearchOthersAvailable(ctx context.Context, ownerID string, params ListingSearchParams) ([]models.Listing, int64, error) {
	if params.Condition != "" && !models.BookCondition(params.Condition).IsValid() {
		return nil, 0, &ValidationError{Message: "condition must be one of Excellent, Good, Fair, Poor"}
	}
	params.PaginationParams = utils.NormalizePagination(params.PaginationParams)

	base := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&models.Listing{}).
			Where("owner_id <> ? AND is_available = ?", ownerID, true)

		if params.Search != "" {
			searchTerm := "%" + strings.ToLower(params.Search) + "%"
			query = query.Where("(LOWER(title) LIKE ? OR LOWER(author) LIKE ?)", searchTerm, searchTerm)
		}

		if params.Condition != "" {
			query = query.Where(map[string]interface{}{"condition": params.Condition})
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	listings := make([]models.Listing, 0)
	query := utils.ApplySort(base(), params.PaginationParams, []string{"created_at", "title", "author"})
	if err := utils.ApplyPagination(query, params.PaginationParams).Find(&listings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search listings: %w", err)
	}

	return listings, total, nil
}

// DeleteOwned hard-deletes a listing. A requester who is not the owner gets
// the same NotFoundError as for a missing listing. Favorites that captured
// the listing are left untouched.
func (s *ListingService) DeleteOwned(ctx context.Context, id, requester string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, requester).
		Delete(&models.Listing{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: ResourceListing}
	}

	s.log.WithFields(logrus.Fields{
		"listing_id": id,
		"owner_id":   requester,
	}).Info("Listing deleted")
	return nil
}

// DeleteImage removes images[index]. The last remaining image can never be
// removed.
func (s *ListingService) DeleteImage(ctx context.Context, id, requester string, index int) (*models.Listing, error) {
	var listing *models.Listing

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var err error
		if listing, err = findOwnedForUpdate(tx, id, requester); err != nil {
			return err
		}

		if len(listing.Images) <= models.MinListingImages {
			return &ValidationError{Message: "Cannot delete the last image. At least one image is required."}
		}
		if index < 0 || index >= len(listing.Images) {
			return &ValidationError{Message: "Invalid image index"}
		}

		images := make(models.Images, 0, len(listing.Images)-1)
		images = append(images, listing.Images[:index]...)
		images = append(images, listing.Images[index+1:]...)

		if err := tx.Model(listing).Update("images", images).Error; err != nil {
			return fmt.Errorf("failed to update images: %w", err)
		}
		listing.Images = images
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"listing_id": id,
		"index":      index,
		"remaining":  len(listing.Images),
	}).Info("Listing image deleted")

	return listing, nil
}

// SetAvailability flips the availability flag. Unavailable listings are
// hidden from both list queries.
func (s *ListingService) SetAvailability(ctx context.Context, id, requester string, available bool) (*models.Listing, error) {
	var listing *models.Listing

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var err error
		if listing, err = findOwnedForUpdate(tx, id, requester); err != nil {
			return err
		}

		if err := tx.Model(listing).Update("is_available", available).Error; err != nil {
			return fmt.Errorf("failed to update availability: %w", err)
		}
		listing.IsAvailable = available
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"listing_id": id,
		"available":  available,
	}).Info("Listing availability changed")

	return listing, nil
}

func findOwnedForUpdate(tx *gorm.DB, id, owner string) (*models.Listing, error) {
	query := tx.Where("id = ? AND owner_id = ?", id, owner)
	// SQLite serializes writers on its own and has no row locks.
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var listing models.Listing
	if err := query.First(&listing).Error; err != nil {
		return nil, notFoundOr(err, ResourceListing)
	}
	return &listing, nil
}
