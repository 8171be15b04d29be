package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// AuthHandler groups the session-lifecycle endpoints.
type AuthHandler struct {
	sessions *service.SessionService
	tokens   *service.TokenService
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(sessions *service.SessionService, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		tokens:   tokens,
	}
}

// Register handles multipart sign-up with a mandatory avatar and an
// optional cover image.
// POST /users/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	maxFormSize := int64(model.MaxAvatarSizeBytes+model.MaxCoverSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WriteBadRequest(w, "Uploaded files exceed the size limit")
			return
		}
		httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
		return
	}

	in := &service.RegisterInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		FullName: r.FormValue("fullName"),
	}

	if file, header, err := r.FormFile("avatar"); err == nil {
		defer file.Close()
		in.Avatar = &service.FileUpload{File: file, Header: header}
	} else if err != http.ErrMissingFile {
		httputil.WriteBadRequest(w, "Invalid avatar upload")
		return
	}

	if file, header, err := r.FormFile("coverImage"); err == nil {
		defer file.Close()
		in.CoverImage = &service.FileUpload{File: file, Header: header}
	}

	user, err := h.sessions.Register(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, user, "User registered successfully")
}

// Login verifies credentials and delivers the token pair both in the body
// and as HTTP-only cookies.
// POST /users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, pair, err := h.sessions.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.SetAuthCookies(w, pair.AccessToken, pair.RefreshToken,
		h.tokens.AccessTokenMaxAge(), h.tokens.RefreshTokenMaxAge())

	httputil.WriteSuccess(w, http.StatusOK, model.LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// Logout clears the stored refresh token and both cookies. Idempotent.
// POST /users/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.sessions.Logout(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}

	httputil.ClearAuthCookies(w)
	httputil.WriteSuccess(w, http.StatusOK, nil, "User logged out successfully")
}

// Refresh rotates the token pair. The refresh token is read from the
// cookie first, then the body.
// POST /users/refresh-token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var incoming string
	if cookie, err := r.Cookie(httputil.RefreshTokenCookie); err == nil {
		incoming = cookie.Value
	}
	if incoming == "" {
		var req model.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			incoming = req.RefreshToken
		}
	}

	pair, err := h.sessions.RefreshSession(r.Context(), incoming)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.SetAuthCookies(w, pair.AccessToken, pair.RefreshToken,
		h.tokens.AccessTokenMaxAge(), h.tokens.RefreshTokenMaxAge())

	httputil.WriteSuccess(w, http.StatusOK, pair, "Access token refreshed")
}

// parseLimit reads an optional ?limit query parameter.
func parseLimit(r *http.Request, fallback int) int {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return fallback
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
