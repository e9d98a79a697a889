// internal/models/profile.go
package models

import (
	"time"
)

type Profile struct {
	UserID         string       `json:"user_id" gorm:"size:128;primaryKey"`
	Email          string       `json:"email" gorm:"size:255;not null"`
	ProfileName    string       `json:"profile_name" gorm:"size:100;not null"`
	ProfilePicture string       `json:"profile_picture" gorm:"type:text"`
	Branch         Branch       `json:"branch" gorm:"type:varchar(64);not null"`
	AcademicYear   AcademicYear `json:"academic_year" gorm:"type:varchar(8);not null"`
	CollegeName    string       `json:"college_name" gorm:"size:255"`
	PhoneNumber    string       `json:"phone_number" gorm:"size:32;not null"`
	AuthProvider   AuthProvider `json:"auth_provider" gorm:"type:varchar(16);default:'email'"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Relationships
	Favorites []Favorite `json:"favorites,omitempty" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (Profile) TableName() string {
	return "profiles"
}

// PublicProfile is what other users may see.
type PublicProfile struct {
	ProfileName    string       `json:"profile_name"`
	ProfilePicture string       `json:"profile_picture"`
	Branch         Branch       `json:"branch"`
	AcademicYear   AcademicYear `json:"academic_year"`
	CollegeName    string       `json:"college_name"`
}

func (p *Profile) Public() PublicProfile {
	return PublicProfile{
		ProfileName:    p.ProfileName,
		ProfilePicture: p.ProfilePicture,
		Branch:         p.Branch,
		AcademicYear:   p.AcademicYear,
		CollegeName:    p.CollegeName,
	}
}
