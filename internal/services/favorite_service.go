// internal/services/favorite_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookxchange/backend/internal/models"
)

const errFavoriteExists = "Book already in favorites"

// FavoriteService keeps per-user snapshots of listings. A snapshot is taken
// once, when the favorite is added, and never refreshed from the listing.
type FavoriteService struct {
	db  *gorm.DB
	log *logrus.Logger
	now func() time.Time
}

func NewFavoriteService(db *gorm.DB, log *logrus.Logger) *FavoriteService {
	return &FavoriteService{
		db:  db,
		log: log,
		now: time.Now,
	}
}

// AddFavorite snapshots the listing bookID into userID's favorites.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, bookID string) (*models.Favorite, error) {
	db := s.db.WithContext(ctx)

	var listing models.Listing
	if err := db.Where("id = ?", bookID).First(&listing).Error; err != nil {
		return nil, notFoundOr(err, ResourceListing)
	}

	if err := s.requireUser(db, userID); err != nil {
		return nil, err
	}

	exists, err := s.isFavorited(db, userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Message: errFavoriteExists}
	}

	favorite := models.NewFavorite(userID, &listing, s.now())
	if err := db.Create(favorite).Error; err != nil {
		// A concurrent add for the same pair got there first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Message: errFavoriteExists}
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"book_id": bookID,
	}).Info("Favorite added")

	return favorite, nil
}

// RemoveFavorite deletes the favorite for bookID. Removing an absent
// favorite succeeds, and the listing itself is never consulted.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, bookID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"book_id": bookID,
		}).Info("Favorite removed")
	}
	return nil
}

// ListFavorites returns the user's snapshots in insertion order.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	db := s.db.WithContext(ctx)

	if err := s.requireUser(db, userID); err != nil {
		return nil, err
	}

	favorites := make([]models.Favorite, 0)
	if err := db.Where("user_id = ?", userID).Order("id").Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// IsFavorited reports whether userID has a favorite for bookID. Unknown
// users simply have none.
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, bookID string) (bool, error) {
	return s.isFavorited(s.db.WithContext(ctx), userID, bookID)
}

func (s *FavoriteService) isFavorited(db *gorm.DB, userID, bookID string) (bool, error) {
	var count int64
	err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *FavoriteService) requireUser(db *gorm.DB, userID string) error {
	var count int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return &NotFoundError{Resource: ResourceUser}
	}
	return nil
}
