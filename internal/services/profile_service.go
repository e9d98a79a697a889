// internal/services/profile_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookxchange/backend/internal/database"
	"github.com/bookxchange/backend/internal/models"
	"github.com/bookxchange/backend/internal/utils"
)

type ProfileService struct {
	db             *gorm.DB
	images         *ImageService
	log            *logrus.Logger
	defaultCollege string
}

type UpsertProfileRequest struct {
	ProfileName    string  `json:"profile_name" validate:"notblank,max=100"`
	Branch         string  `json:"branch" validate:"required,branch"`
	AcademicYear   string  `json:"academic_year" validate:"required,academic_year"`
	PhoneNumber    string  `json:"phone_number" validate:"notblank,max=32"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Email          string  `json:"email" validate:"omitempty,email"`
	AuthProvider   string  `json:"auth_provider,omitempty" validate:"omitempty,auth_provider"`
}

func NewProfileService(db *gorm.DB, images *ImageService, log *logrus.Logger, defaultCollege string) *ProfileService {
	return &ProfileService{
		db:             db,
		images:         images,
		log:            log,
		defaultCollege: defaultCollege,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return findProfile(s.db.WithContext(ctx), userID)
}

func (s *ProfileService) GetPublic(ctx context.Context, userID string) (*models.PublicProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := profile.Public()
	return &public, nil
}

// Upsert creates the caller's profile or updates it. On update the stored
// email is kept; the picture and auth provider change only when supplied.
func (s *ProfileService) Upsert(ctx context.Context, userID string, req *UpsertProfileRequest) (*models.Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, newValidationError(err)
	}

	if req.ProfilePicture != nil && *req.ProfilePicture != "" {
		if _, err := s.images.Validate(*req.ProfilePicture); err != nil {
			return nil, &ValidationError{Message: "profile_picture: " + err.Error()}
		}
	}

	profile, err := s.upsert(ctx, userID, req)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a create race with another request for the same user; the
		// row exists now, so the second attempt updates it.
		profile, err = s.upsert(ctx, userID, req)
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) upsert(ctx context.Context, userID string, req *UpsertProfileRequest) (*models.Profile, error) {
	var profile models.Profile

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if strings.TrimSpace(req.Email) == "" {
				return &ValidationError{Message: "email is required"}
			}
			profile = models.Profile{
				UserID:       userID,
				Email:        req.Email,
				CollegeName:  s.defaultCollege,
				AuthProvider: models.AuthProviderEmail,
			}
			applyProfileFields(&profile, req)
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			s.log.WithField("user_id", userID).Info("Profile created")
			return nil
		case err != nil:
			return fmt.Errorf("database error: %w", err)
		}

		applyProfileFields(&profile, req)
		if err := tx.Save(&profile).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		s.log.WithField("user_id", userID).Info("Profile updated")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func applyProfileFields(p *models.Profile, req *UpsertProfileRequest) {
	p.ProfileName = strings.TrimSpace(req.ProfileName)
	p.Branch = models.Branch(req.Branch)
	p.AcademicYear = models.AcademicYear(req.AcademicYear)
	p.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.ProfilePicture != nil {
		p.ProfilePicture = *req.ProfilePicture
	}
	if req.AuthProvider != "" {
		p.AuthProvider = models.AuthProvider(req.AuthProvider)
	}
}

func (s *ProfileService) RemovePicture(ctx context.Context, userID string) error {
	result := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("profile_picture", "")
	if result.Error != nil {
		return fmt.Errorf("failed to remove profile picture: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: ResourceProfile}
	}
	return nil
}

func findProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFoundOr(err, ResourceProfile)
	}
	return &profile, nil
}
