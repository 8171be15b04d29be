package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vidtube/internal/config"
	"vidtube/internal/model"
)

// Claims embeds the registered JWT claims plus the user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

// TokenService issues and verifies both token classes. Access and refresh
// tokens are signed with distinct secrets so one class never verifies as
// the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     time.Duration(cfg.AccessTokenMaxAge) * time.Second,
		refreshTTL:    time.Duration(cfg.RefreshTokenMaxAge) * time.Second,
	}
}

// IssueAccessToken mints a short-lived bearer token for API calls.
func (s *TokenService) IssueAccessToken(userID int64) (string, error) {
	return issueToken(userID, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken mints a long-lived token used solely to rotate pairs.
func (s *TokenService) IssueRefreshToken(userID int64) (string, error) {
	return issueToken(userID, s.refreshSecret, s.refreshTTL)
}

// IssuePair mints both tokens for the given user.
func (s *TokenService) IssuePair(userID int64) (*model.TokenPair, error) {
	accessToken, err := s.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccessToken validates an access-class token and returns the user id.
func (s *TokenService) VerifyAccessToken(token string) (int64, error) {
	return verifyToken(token, s.accessSecret)
}

// VerifyRefreshToken validates a refresh-class token and returns the user id.
func (s *TokenService) VerifyRefreshToken(token string) (int64, error) {
	return verifyToken(token, s.refreshSecret)
}

// AccessTokenMaxAge returns the access token lifetime in whole seconds.
func (s *TokenService) AccessTokenMaxAge() int {
	return int(s.accessTTL / time.Second)
}

// RefreshTokenMaxAge returns the refresh token lifetime in whole seconds.
func (s *TokenService) RefreshTokenMaxAge() int {
	return int(s.refreshTTL / time.Second)
}

func issueToken(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// iat/exp have second precision; the jti keeps two issuances for
			// the same user within the same second from minting identical
			// tokens, which would defeat exact-match rotation.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(secret)
}

func verifyToken(tokenString string, secret []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, model.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, model.ErrTokenMalformed
		default:
			return 0, model.ErrTokenInvalid
		}
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, model.ErrTokenInvalid
	}

	return claims.UserID, nil
}
