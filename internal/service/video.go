package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"vidtube/internal/cache"
	"vidtube/internal/model"
	"vidtube/internal/queue"
	"vidtube/internal/repository"
)

// VideoUploader is the slice of the media service the video flows need.
type VideoUploader interface {
	UploadVideoFile(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
	UploadThumbnail(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
}

// PublishInput carries a new video's metadata and both mandatory files.
type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *FileUpload
	Thumbnail   *FileUpload
}

// VideoService handles video metadata and the view pipeline. Watches are
// acknowledged via the Redis counter and a stream event; the worker folds
// them into the database later.
type VideoService struct {
	videos    repository.VideoRepository
	users     repository.UserRepository
	views     cache.ViewCache
	media     VideoUploader
	publisher queue.Publisher
}

func NewVideoService(videos repository.VideoRepository, users repository.UserRepository, views cache.ViewCache, media VideoUploader, publisher queue.Publisher) *VideoService {
	return &VideoService{
		videos:    videos,
		users:     users,
		views:     views,
		media:     media,
		publisher: publisher,
	}
}

// Publish uploads the video file and thumbnail and creates the metadata
// record. New videos start unpublished.
func (s *VideoService) Publish(ctx context.Context, ownerID int64, in *PublishInput) (*model.Video, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if title == "" || description == "" {
		return nil, model.Validationf("title and description are required")
	}
	if in.Duration <= 0 {
		return nil, model.Validationf("duration must be positive")
	}
	if in.VideoFile == nil {
		return nil, model.Validationf("video file is required")
	}
	if in.Thumbnail == nil {
		return nil, model.Validationf("thumbnail is required")
	}

	videoRes, err := s.media.UploadVideoFile(ctx, in.VideoFile.File, in.VideoFile.Header)
	if err != nil {
		return nil, fmt.Errorf("%w: video file: %v", model.ErrUpload, err)
	}
	if videoRes == nil || videoRes.URL == "" {
		return nil, fmt.Errorf("%w: video file upload returned no URL", model.ErrUpload)
	}

	thumbRes, err := s.media.UploadThumbnail(ctx, in.Thumbnail.File, in.Thumbnail.Header)
	if err != nil {
		return nil, fmt.Errorf("%w: thumbnail: %v", model.ErrUpload, err)
	}
	if thumbRes == nil || thumbRes.URL == "" {
		return nil, fmt.Errorf("%w: thumbnail upload returned no URL", model.ErrUpload)
	}

	video := &model.Video{
		OwnerID:      ownerID,
		VideoFileURL: videoRes.URL,
		ThumbnailURL: thumbRes.URL,
		Title:        title,
		Description:  description,
		Duration:     in.Duration,
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	return video, nil
}

// Get returns a video if it is published or owned by the viewer. Pending
// (not yet flushed) views are added so counts read fresh.
func (s *VideoService) Get(ctx context.Context, videoID int64, viewerID *int64) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if !video.IsPublished && (viewerID == nil || *viewerID != video.OwnerID) {
		return nil, model.ErrVideoNotFound
	}

	if pending, err := s.views.Pending(ctx, videoID); err == nil {
		video.Views += pending
	}

	return video, nil
}

// Watch returns the video and records the view: the Redis counter absorbs
// the write, and a watch event tells the worker to persist it and append
// the viewer's history. Neither failure blocks playback.
func (s *VideoService) Watch(ctx context.Context, videoID int64, viewerID *int64) (*model.Video, error) {
	video, err := s.Get(ctx, videoID, viewerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.views.Increment(ctx, videoID); err != nil {
		log.Printf("[VideoService] Watch: view increment failed video=%d err=%v", videoID, err)
	} else {
		video.Views++
	}

	event := queue.NewVideoWatchedEvent(videoID, viewerID)
	if _, err := s.publisher.Publish(ctx, queue.StreamWatch, event); err != nil {
		log.Printf("[VideoService] Watch: event publish failed video=%d err=%v", videoID, err)
	}

	return video, nil
}

// TogglePublish flips the publication flag; only the owner may do this.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, ownerID int64) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, model.ErrVideoNotFound
	}

	if err := s.videos.SetPublished(ctx, videoID, ownerID, !video.IsPublished); err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

// ListByChannel returns a channel's videos. Owners see their unpublished
// videos too.
func (s *VideoService) ListByChannel(ctx context.Context, channelUsername string, viewerID *int64, limit int) ([]model.Video, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	channel, err := s.users.GetByUsername(ctx, channelUsername)
	if err != nil {
		return nil, err
	}

	publishedOnly := viewerID == nil || *viewerID != channel.ID
	return s.videos.ListByOwner(ctx, channel.ID, publishedOnly, limit)
}
