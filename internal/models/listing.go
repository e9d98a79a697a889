// internal/models/listing.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinListingImages = 1
	MaxListingImages = 3
)

// Listing is a book offered for exchange. Owner fields are copied from the
// owner's profile when the listing is created and are not re-synced.
type Listing struct {
	ID          string        `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title       string        `json:"title" gorm:"size:255;not null"`
	Author      string        `json:"author" gorm:"size:255;not null"`
	Condition   BookCondition `json:"condition" gorm:"type:varchar(20);not null"`
	Description string        `json:"description" gorm:"type:text"`
	Images      Images        `json:"images" gorm:"type:text;not null"`
	OwnerID     string        `json:"owner_id" gorm:"size:128;not null;index"`
	OwnerName   string        `json:"owner_name" gorm:"size:100;not null"`
	OwnerEmail  string        `json:"owner_email" gorm:"size:255;not null"`
	OwnerPhone  string        `json:"owner_phone" gorm:"size:32;not null"`
	IsAvailable bool          `json:"is_available" gorm:"default:true;index"`
	CreatedAt   time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
