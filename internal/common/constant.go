// Package common holds constants shared by the client packages.
package common

const (
	// TokenKey is the durable-storage key of the bearer token.
	TokenKey = "token"
	// TokenSavedAtKey records when the current token was stored.
	TokenSavedAtKey = "token_saved_at"

	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
	RequestIDHeader     = "X-Request-ID"

	// MaxPhotoSize is the upload ceiling for a single photo.
	MaxPhotoSize = 5 * 1024 * 1024

	PlaceholderImageURL = "https://via.placeholder.com/400x300?text=No+Image"
)
