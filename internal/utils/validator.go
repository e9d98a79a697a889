// internal/utils/validator.go
package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bookxchange/backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("condition", validateCondition)
	validate.RegisterValidation("branch", validateBranch)
	validate.RegisterValidation("academic_year", validateAcademicYear)
	validate.RegisterValidation("auth_provider", validateAuthProvider)
	validate.RegisterValidation("notblank", validateNotBlank)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func validateCondition(fl validator.FieldLevel) bool {
	return models.BookCondition(fl.Field().String()).IsValid()
}

func validateBranch(fl validator.FieldLevel) bool {
	return models.Branch(fl.Field().String()).IsValid()
}

func validateAcademicYear(fl validator.FieldLevel) bool {
	return models.AcademicYear(fl.Field().String()).IsValid()
}

func validateAuthProvider(fl validator.FieldLevel) bool {
	return models.AuthProvider(fl.Field().String()).IsValid()
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.Slice {
			return e.Field() + " must contain at least " + e.Param() + " item(s)"
		}
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		if e.Kind() == reflect.Slice {
			return e.Field() + " must contain at most " + e.Param() + " item(s)"
		}
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "condition":
		return "condition must be one of Excellent, Good, Fair, Poor"
	case "branch":
		return "branch is not a recognised academic branch"
	case "academic_year":
		return "academic_year must be one of 1st, 2nd, 3rd, 4th"
	case "auth_provider":
		return "auth_provider must be email or google"
	default:
		return e.Field() + " is invalid"
	}
}
