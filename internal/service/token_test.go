package service

import (
	"errors"
	"testing"

	"vidtube/internal/config"
	"vidtube/internal/model"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := testTokenService()

	pair, err := tokens.IssuePair(42)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	if id, err := tokens.VerifyAccessToken(pair.AccessToken); err != nil || id != 42 {
		t.Errorf("VerifyAccessToken = (%d, %v), want (42, nil)", id, err)
	}
	if id, err := tokens.VerifyRefreshToken(pair.RefreshToken); err != nil || id != 42 {
		t.Errorf("VerifyRefreshToken = (%d, %v), want (42, nil)", id, err)
	}
}

func TestTokenService_DistinctPerIssuance(t *testing.T) {
	tokens := testTokenService()

	// Issued back to back within the same second: the jti claim must still
	// make every token unique, since refresh rotation compares tokens byte
	// for byte.
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		token, err := tokens.IssueRefreshToken(42)
		if err != nil {
			t.Fatalf("issue refresh token: %v", err)
		}
		if seen[token] {
			t.Fatalf("issuance %d minted a duplicate token", i)
		}
		seen[token] = true
	}
}

func TestTokenService_ClassSeparation(t *testing.T) {
	tokens := testTokenService()

	pair, err := tokens.IssuePair(42)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	// Each class is signed with its own secret, so cross-verification fails.
	if _, err := tokens.VerifyRefreshToken(pair.AccessToken); !errors.Is(err, model.ErrTokenInvalid) {
		t.Errorf("access token as refresh: error = %v, want %v", err, model.ErrTokenInvalid)
	}
	if _, err := tokens.VerifyAccessToken(pair.RefreshToken); !errors.Is(err, model.ErrTokenInvalid) {
		t.Errorf("refresh token as access: error = %v, want %v", err, model.ErrTokenInvalid)
	}
}

func TestTokenService_Expired(t *testing.T) {
	tokens := NewTokenService(&config.Config{
		AccessTokenSecret:  "access-secret-for-tests",
		RefreshTokenSecret: "refresh-secret-for-tests",
		AccessTokenMaxAge:  -60,
		RefreshTokenMaxAge: 864000,
	})

	token, err := tokens.IssueAccessToken(42)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}

	if _, err := tokens.VerifyAccessToken(token); !errors.Is(err, model.ErrTokenExpired) {
		t.Errorf("error = %v, want %v", err, model.ErrTokenExpired)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	tokens := testTokenService()

	if _, err := tokens.VerifyAccessToken("not-a-jwt-at-all"); !errors.Is(err, model.ErrTokenMalformed) {
		t.Errorf("error = %v, want %v", err, model.ErrTokenMalformed)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	tokens := testTokenService()
	other := NewTokenService(&config.Config{
		AccessTokenSecret:  "a-completely-different-secret",
		RefreshTokenSecret: "another-different-secret",
		AccessTokenMaxAge:  900,
		RefreshTokenMaxAge: 864000,
	})

	token, err := other.IssueAccessToken(42)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}

	if _, err := tokens.VerifyAccessToken(token); !errors.Is(err, model.ErrTokenInvalid) {
		t.Errorf("error = %v, want %v", err, model.ErrTokenInvalid)
	}
}

func TestTokenService_MaxAges(t *testing.T) {
	tokens := testTokenService()

	if got := tokens.AccessTokenMaxAge(); got != 900 {
		t.Errorf("AccessTokenMaxAge = %d, want 900", got)
	}
	if got := tokens.RefreshTokenMaxAge(); got != 864000 {
		t.Errorf("RefreshTokenMaxAge = %d, want 864000", got)
	}
}
