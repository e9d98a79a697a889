// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Image is an inline encoded image (base64 or data URL).
type Image struct {
	Data       string    `json:"data"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Images is stored as a JSON document so the same schema works on
// PostgreSQL and SQLite.
type Images []Image

func (i Images) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	b, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *Images) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("images: unsupported column type")
	}

	return json.Unmarshal(bytes, i)
}

// Clone returns a deep copy so snapshots never share backing arrays with
// the listing they were taken from.
func (i Images) Clone() Images {
	if i == nil {
		return nil
	}
	out := make(Images, len(i))
	copy(out, i)
	return out
}

// Enums
type BookCondition string

const (
	ConditionExcellent BookCondition = "Excellent"
	ConditionGood      BookCondition = "Good"
	ConditionFair      BookCondition = "Fair"
	ConditionPoor      BookCondition = "Poor"
)

var BookConditions = []BookCondition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor}

func (c BookCondition) IsValid() bool {
	for _, v := range BookConditions {
		if c == v {
			return true
		}
	}
	return false
}

type Branch string

const (
	BranchComputerScience Branch = "Computer Science"
	BranchMechanical      Branch = "Mechanical Engineering"
	BranchElectrical      Branch = "Electrical Engineering"
	BranchCivil           Branch = "Civil Engineering"
	BranchElectronicsComm Branch = "Electronics and Communication"
	BranchInformationTech Branch = "Information Technology"
	BranchChemical        Branch = "Chemical Engineering"
	BranchOther           Branch = "Other"
)

var Branches = []Branch{
	BranchComputerScience,
	BranchMechanical,
	BranchElectrical,
	BranchCivil,
	BranchElectronicsComm,
	BranchInformationTech,
	BranchChemical,
	BranchOther,
}

func (b Branch) IsValid() bool {
	for _, v := range Branches {
		if b == v {
			return true
		}
	}
	return false
}

type AcademicYear string

const (
	AcademicYearFirst  AcademicYear = "1st"
	AcademicYearSecond AcademicYear = "2nd"
	AcademicYearThird  AcademicYear = "3rd"
	AcademicYearFourth AcademicYear = "4th"
)

var AcademicYears = []AcademicYear{AcademicYearFirst, AcademicYearSecond, AcademicYearThird, AcademicYearFourth}

func (y AcademicYear) IsValid() bool {
	for _, v := range AcademicYears {
		if y == v {
			return true
		}
	}
	return false
}

type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

func (p AuthProvider) IsValid() bool {
	return p == AuthProviderEmail || p == AuthProviderGoogle
}
