package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagesScan(t *testing.T) {
	var imgs Images
	require.NoError(t, imgs.Scan(`[{"data":"aGVsbG8=","uploaded_at":"2026-01-02T03:04:05Z"}]`))
	require.Len(t, imgs, 1)
	assert.Equal(t, "aGVsbG8=", imgs[0].Data)

	require.NoError(t, imgs.Scan([]byte(`[]`)))
	assert.Empty(t, imgs)

	require.NoError(t, imgs.Scan(nil))
	assert.Nil(t, imgs)

	assert.Error(t, imgs.Scan(42))
}

func TestImagesValueNil(t *testing.T) {
	v, err := Images(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestNewFavoriteCopiesListing(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	added := created.Add(time.Hour)
	l := &Listing{
		ID:          "book-1",
		Title:       "Operating System Concepts",
		Author:      "Silberschatz",
		Condition:   ConditionGood,
		Description: "10th edition",
		Images:      Images{{Data: "a"}, {Data: "b"}},
		OwnerID:     "owner",
		OwnerName:   "Ravi",
		OwnerEmail:  "ravi@example.edu",
		OwnerPhone:  "9876543210",
		IsAvailable: true,
		CreatedAt:   created,
	}

	fav := NewFavorite("reader", l, added)

	assert.Equal(t, "reader", fav.UserID)
	assert.Equal(t, l.ID, fav.BookID)
	assert.Equal(t, l.Title, fav.Title)
	assert.Equal(t, l.Author, fav.Author)
	assert.Equal(t, l.Condition, fav.Condition)
	assert.Equal(t, l.Description, fav.Description)
	assert.Equal(t, l.Images, fav.Images)
	assert.Equal(t, l.OwnerName, fav.OwnerName)
	assert.Equal(t, l.OwnerEmail, fav.OwnerEmail)
	assert.Equal(t, l.OwnerPhone, fav.OwnerPhone)
	assert.Equal(t, created, fav.CreatedAt)
	assert.Equal(t, added, fav.AddedAt)

	// the snapshot must not alias the listing's images
	l.Images[0].Data = "changed"
	l.Images = l.Images[:1]
	assert.Equal(t, "a", fav.Images[0].Data)
	assert.Len(t, fav.Images, 2)
}

func TestEnums(t *testing.T) {
	assert.True(t, ConditionFair.IsValid())
	assert.False(t, BookCondition("Mint").IsValid())
	assert.True(t, Branch("Civil Engineering").IsValid())
	assert.False(t, Branch("Law").IsValid())
	assert.True(t, AcademicYear("4th").IsValid())
	assert.False(t, AcademicYear("5th").IsValid())
	assert.True(t, AuthProviderGoogle.IsValid())
	assert.False(t, AuthProvider("github").IsValid())
}
