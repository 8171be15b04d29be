package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// UserHandler serves the authenticated account endpoints.
type UserHandler struct {
	sessions *service.SessionService
}

func NewUserHandler(sessions *service.SessionService) *UserHandler {
	return &UserHandler{sessions: sessions}
}

// Me returns the authenticated user's public projection.
// GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.sessions.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user, "Current user fetched successfully")
}

// ChangePassword verifies the current password and swaps in the new one.
// POST /users/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.sessions.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Password changed successfully")
}

// UpdateProfile updates full name and email.
// PATCH /users/me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.sessions.UpdateProfile(r.Context(), userID, req.FullName, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user, "Profile updated successfully")
}

// UpdateAvatar replaces the avatar image.
// PATCH /users/avatar
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", int64(model.MaxAvatarSizeBytes), h.sessions.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCoverImage replaces the cover image.
// PATCH /users/cover
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", int64(model.MaxCoverSizeBytes), h.sessions.UpdateCoverImage, "Cover image updated successfully")
}

func (h *UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	maxSize int64,
	update func(ctx context.Context, userID int64, upload *service.FileUpload) (*model.User, error),
	message string,
) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1024*1024)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		httputil.WriteBadRequest(w, field+" file is required")
		return
	}
	defer file.Close()

	user, err := update(r.Context(), userID, &service.FileUpload{File: file, Header: header})
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user, message)
}

// WatchHistory returns the caller's recently watched videos.
// GET /users/history
func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	history, err := h.sessions.GetWatchHistory(r.Context(), userID, parseLimit(r, 20))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, history, "Watch history fetched successfully")
}
