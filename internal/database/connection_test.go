package database_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookxchange/backend/internal/database"
	"github.com/bookxchange/backend/internal/models"
	"github.com/bookxchange/backend/internal/testutil"
)

func TestFavoriteUniqueIndexTranslatesDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)

	require.NoError(t, db.Create(&models.Profile{
		UserID: "u1", Email: "u1@example.edu", ProfileName: "U1",
		Branch: models.BranchOther, AcademicYear: models.AcademicYearFirst, PhoneNumber: "1",
	}).Error)

	require.NoError(t, db.Create(&models.Favorite{UserID: "u1", BookID: "b1"}).Error)
	err := db.Create(&models.Favorite{UserID: "u1", BookID: "b1"}).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	assert.NoError(t, db.Create(&models.Favorite{UserID: "u1", BookID: "b2"}).Error)
}

func TestWithTransactionRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	boom := errors.New("boom")

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Listing{Title: "t", Author: "a", Condition: models.ConditionGood, OwnerID: "o", OwnerName: "n", OwnerEmail: "e", OwnerPhone: "p"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.Listing{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)

	require.NoError(t, database.SeedDemoData(db, "Test College"))
	require.NoError(t, database.SeedDemoData(db, "Test College"))

	var profiles, listings int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	require.NoError(t, db.Model(&models.Listing{}).Count(&listings).Error)
	assert.Equal(t, int64(2), profiles)
	assert.Equal(t, int64(4), listings)
}
