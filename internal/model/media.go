package model

import "errors"

const (
	MaxAvatarSizeBytes = 5 * 1024 * 1024   // 5MB
	MaxCoverSizeBytes  = 8 * 1024 * 1024   // 8MB
	MaxVideoSizeBytes  = 256 * 1024 * 1024 // 256MB

	AvatarWidth  = 200
	AvatarHeight = 200
	CoverWidth   = 1280
	CoverHeight  = 360

	AvatarFolder    = "avatars"
	CoverFolder     = "covers"
	VideoFolder     = "videos"
	ThumbnailFolder = "thumbnails"

	ImageExt          = ".jpg"
	MediaCacheControl = "public, max-age=31536000" // 1 year
)

// Supported content types for upload validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"

	ContentTypeMP4  = "video/mp4"
	ContentTypeWebM = "video/webm"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeGIF:  {},
	ContentTypeWebP: {},
}

var allowedVideoTypes = map[string]struct{}{
	ContentTypeMP4:  {},
	ContentTypeWebM: {},
}

func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

func IsAllowedVideoType(contentType string) bool {
	_, ok := allowedVideoTypes[contentType]
	return ok
}

// Domain errors for media operations
var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
	ErrInvalidVideoType = errors.New("invalid video type")
)

// UploadResult represents the uploaded object location.
// URL is the public-facing URL; Key is the object key inside the bucket.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
