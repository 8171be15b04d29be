package model

import "errors"

// TokenPair holds both bearer credentials issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshRequest is the body fallback for POST /users/refresh-token
// when the refreshToken cookie is absent.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Token verification errors. Wrong-class signatures surface as ErrTokenInvalid.
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors for the refresh flow.
var (
	ErrRefreshTokenMissing = errors.New("unauthorized request")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	// ErrRefreshTokenUsed means the presented token was rotated away:
	// cryptographically valid, but no longer the stored one.
	ErrRefreshTokenUsed = errors.New("refresh token expired or used")
)
