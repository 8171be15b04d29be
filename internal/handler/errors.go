package handler

import (
	"errors"
	"log"
	"net/http"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
)

// respondError is the single error-normalization boundary: domain errors
// raised anywhere in the services map 1:1 onto the failure envelope here.
// Anything unrecognized is a dependency failure and reads as a 500 without
// leaking internals.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrUpload):
		httputil.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrUserExists):
		httputil.WriteConflict(w, "User already exists")
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrVideoNotFound):
		httputil.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrRefreshTokenMissing),
		errors.Is(err, model.ErrRefreshTokenInvalid),
		errors.Is(err, model.ErrRefreshTokenUsed),
		errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMalformed):
		httputil.WriteUnauthorized(w, err.Error())
	default:
		log.Printf("[Handler] unexpected error: %v", err)
		httputil.WriteInternalError(w, "Something went wrong")
	}
}
