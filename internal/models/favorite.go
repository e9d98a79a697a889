// internal/models/favorite.go
package models

import (
	"time"
)

// Favorite is a snapshot of a listing taken when a user saved it. BookID is
// a lookup-only reference: the listing may be edited or deleted afterwards
// without touching the snapshot.
type Favorite struct {
	ID          uint64        `json:"-" gorm:"primaryKey;autoIncrement"`
	UserID      string        `json:"-" gorm:"size:128;not null;uniqueIndex:idx_favorites_user_book,priority:1"`
	BookID      string        `json:"book_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_book,priority:2"`
	Title       string        `json:"title" gorm:"size:255"`
	Author      string        `json:"author" gorm:"size:255"`
	Condition   BookCondition `json:"condition" gorm:"type:varchar(20)"`
	Description string        `json:"description" gorm:"type:text"`
	Images      Images        `json:"images" gorm:"type:text"`
	OwnerID     string        `json:"owner_id" gorm:"size:128"`
	OwnerName   string        `json:"owner_name" gorm:"size:100"`
	OwnerEmail  string        `json:"owner_email" gorm:"size:255"`
	OwnerPhone  string        `json:"owner_phone" gorm:"size:32"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime:false"`
	AddedAt     time.Time     `json:"added_at" gorm:"not null"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// NewFavorite copies every field of l at this instant.
func NewFavorite(userID string, l *Listing, addedAt time.Time) *Favorite {
	return &Favorite{
		UserID:      userID,
		BookID:      l.ID,
		Title:       l.Title,
		Author:      l.Author,
		Condition:   l.Condition,
		Description: l.Description,
		Images:      l.Images.Clone(),
		OwnerID:     l.OwnerID,
		OwnerName:   l.OwnerName,
		OwnerEmail:  l.OwnerEmail,
		OwnerPhone:  l.OwnerPhone,
		CreatedAt:   l.CreatedAt,
		AddedAt:     addedAt,
	}
}
