package httputil

import (
	"net/http"
	"time"
)

// Cookie names for the dual-delivery token transport. Both tokens are also
// returned in response bodies for non-browser clients.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// SetAuthCookies attaches both tokens as HTTP-only, transport-secure cookies.
func SetAuthCookies(w http.ResponseWriter, accessToken, refreshToken string, accessMaxAge, refreshMaxAge int) {
	setAuthCookie(w, AccessTokenCookie, accessToken, accessMaxAge)
	setAuthCookie(w, RefreshTokenCookie, refreshToken, refreshMaxAge)
}

// ClearAuthCookies expires both token cookies.
func ClearAuthCookies(w http.ResponseWriter) {
	clearAuthCookie(w, AccessTokenCookie)
	clearAuthCookie(w, RefreshTokenCookie)
}

func setAuthCookie(w http.ResponseWriter, name, value string, maxAge int) {
	if value == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  time.Now().Add(time.Duration(maxAge) * time.Second).UTC(),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearAuthCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
