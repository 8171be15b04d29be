package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// ImageUploader is the slice of the media service the session flows need.
type ImageUploader interface {
	UploadAvatar(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
	UploadCoverImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
}

// FileUpload bundles a parsed multipart file with its header.
type FileUpload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// RegisterInput carries everything Register needs. Avatar is mandatory,
// CoverImage optional.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	Avatar     *FileUpload
	CoverImage *FileUpload
}

// SessionService orchestrates the credential lifecycle: registration, login,
// logout and refresh-token rotation. It composes the user repository, the
// password hasher and the token service.
type SessionService struct {
	users  repository.UserRepository
	tokens *TokenService
	media  ImageUploader
}

func NewSessionService(users repository.UserRepository, tokens *TokenService, media ImageUploader) *SessionService {
	return &SessionService{
		users:  users,
		tokens: tokens,
		media:  media,
	}
}

// Register creates a new account. Username and email are stored lowercased;
// the avatar upload must succeed, a failed cover upload degrades to "".
func (s *SessionService) Register(ctx context.Context, in *RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	fullName := strings.TrimSpace(in.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(in.Password) == "" {
		return nil, model.Validationf("all fields are required")
	}
	if in.Avatar == nil {
		return nil, model.Validationf("avatar is required")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, model.ErrUserExists
	}

	avatarURL, coverImageURL, err := s.uploadRegistrationImages(ctx, in.Avatar, in.CoverImage)
	if err != nil {
		return nil, err
	}

	// Hash the password exactly as given; trimming is for validation only, so
	// whatever was registered is what verifies on login.
	passwordHash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:      strings.ToLower(username),
		Email:         strings.ToLower(email),
		FullName:      fullName,
		PasswordHash:  passwordHash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// uploadRegistrationImages runs both uploads concurrently. The avatar result
// is mandatory; a cover failure is tolerated and stored as "".
func (s *SessionService) uploadRegistrationImages(ctx context.Context, avatar, cover *FileUpload) (string, string, error) {
	var (
		wg        sync.WaitGroup
		avatarRes *model.UploadResult
		coverRes  *model.UploadResult
		avatarErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		avatarRes, avatarErr = s.media.UploadAvatar(ctx, avatar.File, avatar.Header)
	}()

	if cover != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Best effort: error intentionally dropped.
			coverRes, _ = s.media.UploadCoverImage(ctx, cover.File, cover.Header)
		}()
	}

	wg.Wait()

	if avatarErr != nil || avatarRes == nil || avatarRes.URL == "" {
		if avatarErr != nil {
			return "", "", fmt.Errorf("%w: avatar: %v", model.ErrUpload, avatarErr)
		}
		return "", "", fmt.Errorf("%w: avatar upload returned no URL", model.ErrUpload)
	}

	coverImageURL := ""
	if coverRes != nil {
		coverImageURL = coverRes.URL
	}
	return avatarRes.URL, coverImageURL, nil
}

// Login verifies the credential and issues a fresh token pair. The new
// refresh token overwrites any previously stored one, so at most one refresh
// token is valid per user at any time.
func (s *SessionService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, *model.TokenPair, error) {
	identifier := strings.TrimSpace(req.Identifier())
	if identifier == "" {
		return nil, nil, model.Validationf("username or email is required")
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, nil, err
	}

	if !VerifyPassword(req.Password, user.PasswordHash) {
		return nil, nil, model.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		return nil, nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshToken = &pair.RefreshToken

	return user, pair, nil
}

// Logout clears the stored refresh token. Logging out an already-logged-out
// user is not an error.
func (s *SessionService) Logout(ctx context.Context, userID int64) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// RefreshSession rotates the token pair. A refresh token is single-use: it
// must verify against the refresh secret AND exactly match the stored token.
// A cryptographically valid token that was already rotated away is rejected.
func (s *SessionService) RefreshSession(ctx context.Context, incoming string) (*model.TokenPair, error) {
	if incoming == "" {
		return nil, model.ErrRefreshTokenMissing
	}

	userID, err := s.tokens.VerifyRefreshToken(incoming)
	if err != nil {
		return nil, model.ErrRefreshTokenInvalid
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, model.ErrRefreshTokenInvalid
	}

	if user.RefreshToken == nil || *user.RefreshToken != incoming {
		return nil, model.ErrRefreshTokenUsed
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return pair, nil
}

// ChangePassword swaps the stored hash after verifying the current password.
func (s *SessionService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if strings.TrimSpace(currentPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return model.Validationf("current and new password are required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !VerifyPassword(currentPassword, user.PasswordHash) {
		return model.ErrInvalidCredentials
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (s *SessionService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile updates the mutable account details. Both fields required.
func (s *SessionService) UpdateProfile(ctx context.Context, userID int64, fullName, email string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" {
		return nil, model.Validationf("fullName and email are required")
	}

	user, err := s.users.UpdateProfile(ctx, userID, fullName, email)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar uploads a replacement avatar and stores its URL.
func (s *SessionService) UpdateAvatar(ctx context.Context, userID int64, upload *FileUpload) (*model.User, error) {
	if upload == nil {
		return nil, model.Validationf("avatar file is required")
	}

	res, err := s.media.UploadAvatar(ctx, upload.File, upload.Header)
	if err != nil {
		return nil, fmt.Errorf("%w: avatar: %v", model.ErrUpload, err)
	}
	if res == nil || res.URL == "" {
		return nil, fmt.Errorf("%w: avatar upload returned no URL", model.ErrUpload)
	}

	return s.users.UpdateAvatarURL(ctx, userID, res.URL)
}

// UpdateCoverImage uploads a replacement cover image and stores its URL.
func (s *SessionService) UpdateCoverImage(ctx context.Context, userID int64, upload *FileUpload) (*model.User, error) {
	if upload == nil {
		return nil, model.Validationf("cover image file is required")
	}

	res, err := s.media.UploadCoverImage(ctx, upload.File, upload.Header)
	if err != nil {
		return nil, fmt.Errorf("%w: cover image: %v", model.ErrUpload, err)
	}
	if res == nil || res.URL == "" {
		return nil, fmt.Errorf("%w: cover image upload returned no URL", model.ErrUpload)
	}

	return s.users.UpdateCoverImageURL(ctx, userID, res.URL)
}

// GetWatchHistory returns the user's most recently watched videos.
func (s *SessionService) GetWatchHistory(ctx context.Context, userID int64, limit int) ([]model.WatchHistoryEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.users.GetWatchHistory(ctx, userID, limit)
}
