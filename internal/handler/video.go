package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// VideoHandler serves video publishing, playback and listing.
type VideoHandler struct {
	videos *service.VideoService
}

func NewVideoHandler(videos *service.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// Publish uploads a video file plus thumbnail and creates the record.
// POST /videos
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxVideoSizeBytes+model.MaxCoverSizeBytes) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
		return
	}

	duration, err := strconv.ParseFloat(r.FormValue("duration"), 64)
	if err != nil {
		httputil.WriteBadRequest(w, "duration must be a number of seconds")
		return
	}

	in := &service.PublishInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Duration:    duration,
	}

	if file, header, err := r.FormFile("videoFile"); err == nil {
		defer file.Close()
		in.VideoFile = &service.FileUpload{File: file, Header: header}
	}
	if file, header, err := r.FormFile("thumbnail"); err == nil {
		defer file.Close()
		in.Thumbnail = &service.FileUpload{File: file, Header: header}
	}

	video, err := h.videos.Publish(r.Context(), userID, in)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, video, "Video published successfully")
}

// Get returns a single video's metadata without counting a view.
// GET /videos/{videoID}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := videoIDParam(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video id")
		return
	}

	video, err := h.videos.Get(r.Context(), videoID, viewerID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Video fetched successfully")
}

// Watch returns the video and records the view asynchronously.
// GET /videos/{videoID}/watch
func (h *VideoHandler) Watch(w http.ResponseWriter, r *http.Request) {
	videoID, err := videoIDParam(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video id")
		return
	}

	video, err := h.videos.Watch(r.Context(), videoID, viewerID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Video fetched successfully")
}

// TogglePublish flips the publication flag on an owned video.
// PATCH /videos/{videoID}/publish
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, err := videoIDParam(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video id")
		return
	}

	video, err := h.videos.TogglePublish(r.Context(), videoID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Publish status updated")
}

// ListByChannel returns a channel's videos, newest first.
// GET /channels/{username}/videos
func (h *VideoHandler) ListByChannel(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	videos, err := h.videos.ListByChannel(r.Context(), username, viewerID(r), parseLimit(r, 20))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, videos, "Channel videos fetched successfully")
}

func videoIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "videoID"), 10, 64)
}

// viewerID returns the authenticated user's ID or nil for anonymous requests.
func viewerID(r *http.Request) *int64 {
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		return &userID
	}
	return nil
}
