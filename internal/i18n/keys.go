// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"

	// Profiles
	KeyProfileUpdated        = "profile.updated"
	KeyProfileNotFound       = "profile.not_found"
	KeyProfileRequired       = "profile.required"
	KeyProfilePictureRemoved = "profile.picture_removed"

	// Listings
	KeyListingCreated      = "listing.created"
	KeyListingDeleted      = "listing.deleted"
	KeyListingNotFound     = "listing.not_found"
	KeyListingImageDeleted = "listing.image_deleted"
	KeyListingLastImage    = "listing.last_image"
	KeyListingImageIndex   = "listing.invalid_image_index"
	KeyListingUpdated      = "listing.updated"

	// Favorites
	KeyFavoriteAdded   = "favorite.added"
	KeyFavoriteRemoved = "favorite.removed"
	KeyFavoriteExists  = "favorite.exists"
	KeyUserNotFound    = "user.not_found"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Rate limiting
	KeyRateLimited = "rate.limited"
)
