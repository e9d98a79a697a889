package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookxchange/backend/internal/models"
	"github.com/bookxchange/backend/internal/testutil"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// pngImage returns a distinct base64 payload that passes signature checks.
func pngImage(n int) string {
	data := append(append([]byte{}, pngSignature...), fmt.Sprintf("image-%d", n)...)
	return base64.StdEncoding.EncodeToString(data)
}

const testCollege = "Vignan Institute Of Information Technology"

// stepClock advances one second on every reading.
type stepClock struct {
	current time.Time
}

func newStepClock() *stepClock {
	return &stepClock{current: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

type testEnv struct {
	db        *gorm.DB
	hook      *test.Hook
	clock     *stepClock
	profiles  *ProfileService
	listings  *ListingService
	favorites *FavoriteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	log, hook := testutil.NewLogger()
	clock := newStepClock()
	images := NewImageService(64)

	listings := NewListingService(db, images, log)
	listings.now = clock.Now
	favorites := NewFavoriteService(db, log)
	favorites.now = clock.Now

	return &testEnv{
		db:        db,
		hook:      hook,
		clock:     clock,
		profiles:  NewProfileService(db, images, log, testCollege),
		listings:  listings,
		favorites: favorites,
	}
}

func (e *testEnv) createProfile(t *testing.T, userID, name string) *models.Profile {
	t.Helper()

	profile, err := e.profiles.Upsert(context.Background(), userID, &UpsertProfileRequest{
		ProfileName:  name,
		Branch:       string(models.BranchComputerScience),
		AcademicYear: string(models.AcademicYearSecond),
		PhoneNumber:  "9000000000",
		Email:        userID + "@example.edu",
	})
	require.NoError(t, err)
	return profile
}

func (e *testEnv) createListing(t *testing.T, ownerID, title string, images int) *models.Listing {
	t.Helper()

	req := &CreateListingRequest{
		Title:     title,
		Author:    "Author of " + title,
		Condition: string(models.ConditionGood),
		Images:    make([]string, images),
	}
	for i := range req.Images {
		req.Images[i] = pngImage(i)
	}

	listing, err := e.listings.Create(context.Background(), ownerID, req)
	require.NoError(t, err)
	return listing
}
