// internal/database/seed.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookxchange/backend/internal/models"
)

// SamplePNG is a 1x1 transparent PNG used for demo listings.
const SamplePNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// SeedDemoData creates two demo students with a few listings when the
// database has no profiles yet.
func SeedDemoData(db *gorm.DB, college string) error {
	logrus.Info("Seeding demo data...")

	var profileCount int64
	if err := db.Model(&models.Profile{}).Count(&profileCount).Error; err != nil {
		return fmt.Errorf("failed to count profiles: %w", err)
	}
	if profileCount > 0 {
		logrus.Info("Profiles already present, skipping seed")
		return nil
	}

	profiles := []models.Profile{
		{
			UserID:       "demo-student-1",
			Email:        "anitha@example.edu",
			ProfileName:  "Anitha",
			Branch:       models.BranchComputerScience,
			AcademicYear: models.AcademicYearThird,
			CollegeName:  college,
			PhoneNumber:  "9000000001",
			AuthProvider: models.AuthProviderEmail,
		},
		{
			UserID:       "demo-student-2",
			Email:        "karthik@example.edu",
			ProfileName:  "Karthik",
			Branch:       models.BranchMechanical,
			AcademicYear: models.AcademicYearSecond,
			CollegeName:  college,
			PhoneNumber:  "9000000002",
			AuthProvider: models.AuthProviderGoogle,
		},
	}

	books := []struct {
		owner     int
		title     string
		author    string
		condition models.BookCondition
	}{
		{0, "Introduction to Algorithms", "Cormen, Leiserson, Rivest, Stein", models.ConditionGood},
		{0, "Computer Networks", "Andrew S. Tanenbaum", models.ConditionFair},
		{1, "Engineering Mechanics", "R. C. Hibbeler", models.ConditionExcellent},
		{1, "Thermodynamics: An Engineering Approach", "Cengel, Boles", models.ConditionPoor},
	}

	return WithTransaction(db, func(tx *gorm.DB) error {
		for i := range profiles {
			if err := tx.Create(&profiles[i]).Error; err != nil {
				return fmt.Errorf("failed to create profile %s: %w", profiles[i].UserID, err)
			}
		}

		now := time.Now()
		for _, b := range books {
			owner := profiles[b.owner]
			listing := &models.Listing{
				Title:       b.title,
				Author:      b.author,
				Condition:   b.condition,
				Images:      models.Images{{Data: SamplePNG, UploadedAt: now}},
				OwnerID:     owner.UserID,
				OwnerName:   owner.ProfileName,
				OwnerEmail:  owner.Email,
				OwnerPhone:  owner.PhoneNumber,
				IsAvailable: true,
			}
			if err := tx.Create(listing).Error; err != nil {
				return fmt.Errorf("failed to create listing %q: %w", b.title, err)
			}
		}

		logrus.WithFields(logrus.Fields{
			"profiles": len(profiles),
			"listings": len(books),
		}).Info("Demo data seeding completed")
		return nil
	})
}
