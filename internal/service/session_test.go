package service

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/config"
	"vidtube/internal/model"
)

// =============================================================================
// MOCKS
// =============================================================================
//
// The session service depends on the UserRepository interface and the
// ImageUploader interface, so unit tests swap in mocks with per-test behavior.

type mockUserRepository struct {
	createFn          func(ctx context.Context, user *model.User) error
	getByIDFn         func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn   func(ctx context.Context, username string) (*model.User, error)
	getByIdentifierFn func(ctx context.Context, identifier string) (*model.User, error)
	existsFn          func(ctx context.Context, username, email string) (bool, error)

	// Track calls for assertions
	createCalls       []*model.User
	refreshTokenCalls []refreshTokenCall
	passwordHashCalls []string
	historyCalls      [][2]int64
}

type refreshTokenCall struct {
	UserID int64
	Token  *string
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	if m.getByIdentifierFn != nil {
		return m.getByIdentifierFn(ctx, identifier)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, username, email)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	m.refreshTokenCalls = append(m.refreshTokenCalls, refreshTokenCall{UserID: userID, Token: token})
	return nil
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	m.passwordHashCalls = append(m.passwordHashCalls, passwordHash)
	return nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, userID int64, fullName, email string) (*model.User, error) {
	return &model.User{ID: userID, FullName: fullName, Email: email}, nil
}

func (m *mockUserRepository) UpdateAvatarURL(ctx context.Context, userID int64, url string) (*model.User, error) {
	return &model.User{ID: userID, AvatarURL: url}, nil
}

func (m *mockUserRepository) UpdateCoverImageURL(ctx context.Context, userID int64, url string) (*model.User, error) {
	return &model.User{ID: userID, CoverImageURL: url}, nil
}

func (m *mockUserRepository) AppendWatchHistory(ctx context.Context, userID, videoID int64) error {
	m.historyCalls = append(m.historyCalls, [2]int64{userID, videoID})
	return nil
}

func (m *mockUserRepository) GetWatchHistory(ctx context.Context, userID int64, limit int) ([]model.WatchHistoryEntry, error) {
	return nil, nil
}

// lastStoredToken returns the token from the most recent UpdateRefreshToken call.
func (m *mockUserRepository) lastStoredToken() *string {
	if len(m.refreshTokenCalls) == 0 {
		return nil
	}
	return m.refreshTokenCalls[len(m.refreshTokenCalls)-1].Token
}

type mockImageUploader struct {
	avatarFn func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
	coverFn  func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
}

func (m *mockImageUploader) UploadAvatar(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	if m.avatarFn != nil {
		return m.avatarFn(ctx, file, header)
	}
	return &model.UploadResult{URL: "https://cdn.example.com/avatars/a.jpg", Key: "avatars/a.jpg"}, nil
}

func (m *mockImageUploader) UploadCoverImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	if m.coverFn != nil {
		return m.coverFn(ctx, file, header)
	}
	return &model.UploadResult{URL: "https://cdn.example.com/covers/c.jpg", Key: "covers/c.jpg"}, nil
}

func testTokenService() *TokenService {
	return NewTokenService(&config.Config{
		AccessTokenSecret:  "access-secret-for-tests",
		RefreshTokenSecret: "refresh-secret-for-tests",
		AccessTokenMaxAge:  900,
		RefreshTokenMaxAge: 864000,
	})
}

func newTestSessionService(repo *mockUserRepository) (*SessionService, *TokenService) {
	tokens := testTokenService()
	return NewSessionService(repo, tokens, &mockImageUploader{}), tokens
}

func fakeUpload() *FileUpload {
	return &FileUpload{File: nil, Header: &multipart.FileHeader{Filename: "f.jpg"}}
}

func registerInput() *RegisterInput {
	return &RegisterInput{
		Username: "TestUser",
		Email:    "Test@Example.com",
		Password: "securepassword123",
		FullName: "Test User",
		Avatar:   fakeUpload(),
	}
}

// =============================================================================
// REGISTER TESTS
// =============================================================================

func TestSessionService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{}
	svc, _ := newTestSessionService(mockRepo)

	in := registerInput()
	in.CoverImage = fakeUpload()

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Username and email are canonicalized to lowercase.
	if user.Username != "testuser" {
		t.Errorf("username = %q, want %q", user.Username, "testuser")
	}
	if user.Email != "test@example.com" {
		t.Errorf("email = %q, want %q", user.Email, "test@example.com")
	}

	// Password is hashed, never stored as given.
	if user.PasswordHash == in.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		t.Error("password hash should be a valid bcrypt hash of the password")
	}

	if user.AvatarURL == "" {
		t.Error("avatar URL should be set from the upload result")
	}
	if user.CoverImageURL == "" {
		t.Error("cover image URL should be set when the upload succeeds")
	}

	if len(mockRepo.createCalls) != 1 {
		t.Errorf("Create called %d times, want 1", len(mockRepo.createCalls))
	}
}

func TestSessionService_Register_PublicProjectionHidesSecrets(t *testing.T) {
	mockRepo := &mockUserRepository{}
	svc, _ := newTestSessionService(mockRepo)

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	token := "some-refresh-token"
	user.RefreshToken = &token

	// The JSON projection of a user must never leak credentials.
	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	payload := string(raw)
	if strings.Contains(payload, user.PasswordHash) || strings.Contains(payload, "passwordHash") {
		t.Errorf("serialized user leaks the password hash: %s", payload)
	}
	if strings.Contains(payload, token) || strings.Contains(payload, "refreshToken") {
		t.Errorf("serialized user leaks the refresh token: %s", payload)
	}
}

func TestSessionService_Register_UserExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsFn: func(ctx context.Context, username, email string) (bool, error) {
			return true, nil
		},
	}
	svc, _ := newTestSessionService(mockRepo)

	user, err := svc.Register(context.Background(), registerInput())

	if !errors.Is(err, model.ErrUserExists) {
		t.Errorf("error = %v, want %v", err, model.ErrUserExists)
	}
	if user != nil {
		t.Error("user should be nil when registration fails")
	}
	if len(mockRepo.createCalls) != 0 {
		t.Errorf("Create called %d times, want 0", len(mockRepo.createCalls))
	}
}

func TestSessionService_Register_MissingFields(t *testing.T) {
	svc, _ := newTestSessionService(&mockUserRepository{})

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"blank username", func(in *RegisterInput) { in.Username = "   " }},
		{"blank email", func(in *RegisterInput) { in.Email = "" }},
		{"blank password", func(in *RegisterInput) { in.Password = "  " }},
		{"blank full name", func(in *RegisterInput) { in.FullName = "" }},
		{"missing avatar", func(in *RegisterInput) { in.Avatar = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := registerInput()
			tt.mutate(in)

			_, err := svc.Register(context.Background(), in)
			if !errors.Is(err, model.ErrValidation) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestSessionService_Register_AvatarUploadFailure(t *testing.T) {
	mockRepo := &mockUserRepository{}
	tokens := testTokenService()
	uploader := &mockImageUploader{
		avatarFn: func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
			return nil, errors.New("bucket unavailable")
		},
	}
	svc := NewSessionService(mockRepo, tokens, uploader)

	_, err := svc.Register(context.Background(), registerInput())

	if !errors.Is(err, model.ErrUpload) {
		t.Errorf("error = %v, want %v", err, model.ErrUpload)
	}
	if len(mockRepo.createCalls) != 0 {
		t.Error("Create should not be called when the avatar upload fails")
	}
}

func TestSessionService_Register_CoverUploadFailureTolerated(t *testing.T) {
	mockRepo := &mockUserRepository{}
	tokens := testTokenService()
	uploader := &mockImageUploader{
		coverFn: func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
			return nil, errors.New("bucket unavailable")
		},
	}
	svc := NewSessionService(mockRepo, tokens, uploader)

	in := registerInput()
	in.CoverImage = fakeUpload()

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("cover upload failure should not fail registration, got: %v", err)
	}
	if user.CoverImageURL != "" {
		t.Errorf("cover URL = %q, want empty after failed upload", user.CoverImageURL)
	}
	if user.AvatarURL == "" {
		t.Error("avatar URL should still be set")
	}
}

func TestSessionService_Register_PasswordHashedVerbatim(t *testing.T) {
	var created *model.User
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	mockRepo.getByIdentifierFn = func(ctx context.Context, identifier string) (*model.User, error) {
		if created != nil && identifier == created.Username {
			u := *created
			return &u, nil
		}
		return nil, model.ErrUserNotFound
	}
	svc, _ := newTestSessionService(mockRepo)

	// Surrounding whitespace is trimmed for validation only; the stored hash
	// must cover the password exactly as submitted.
	in := registerInput()
	in.Password = " pw123 "

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !VerifyPassword(" pw123 ", created.PasswordHash) {
		t.Error("the submitted password should verify against the stored hash")
	}
	if VerifyPassword("pw123", created.PasswordHash) {
		t.Error("the trimmed password should not verify")
	}

	if _, _, err := svc.Login(context.Background(), &model.LoginRequest{Username: "testuser", Password: " pw123 "}); err != nil {
		t.Errorf("login with the registered password failed: %v", err)
	}
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func loginRepo(t *testing.T, password string) *mockUserRepository {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{ID: 7, Username: "alice", Email: "alice@example.com", PasswordHash: hash}
	return &mockUserRepository{
		getByIdentifierFn: func(ctx context.Context, identifier string) (*model.User, error) {
			if identifier == "alice" || identifier == "alice@example.com" {
				u := *user
				return &u, nil
			}
			return nil, model.ErrUserNotFound
		},
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			if id == user.ID {
				u := *user
				return &u, nil
			}
			return nil, model.ErrUserNotFound
		},
	}
}

func TestSessionService_Login_StoresIssuedRefreshToken(t *testing.T) {
	mockRepo := loginRepo(t, "correct-horse")
	svc, tokens := newTestSessionService(mockRepo)

	user, pair, err := svc.Login(context.Background(), &model.LoginRequest{Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.ID != 7 {
		t.Errorf("user ID = %d, want 7", user.ID)
	}

	// The stored refresh token must be exactly the issued one, or rotation
	// detection breaks.
	stored := mockRepo.lastStoredToken()
	if stored == nil || *stored != pair.RefreshToken {
		t.Error("stored refresh token should equal the issued refresh token")
	}

	// Both tokens verify against their own class and carry the user ID.
	if id, err := tokens.VerifyAccessToken(pair.AccessToken); err != nil || id != 7 {
		t.Errorf("access token verify = (%d, %v), want (7, nil)", id, err)
	}
	if id, err := tokens.VerifyRefreshToken(pair.RefreshToken); err != nil || id != 7 {
		t.Errorf("refresh token verify = (%d, %v), want (7, nil)", id, err)
	}
}

func TestSessionService_Login_UnknownUser(t *testing.T) {
	mockRepo := loginRepo(t, "correct-horse")
	svc, _ := newTestSessionService(mockRepo)

	_, _, err := svc.Login(context.Background(), &model.LoginRequest{Username: "nobody", Password: "whatever"})

	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

func TestSessionService_Login_WrongPasswordNoMutation(t *testing.T) {
	mockRepo := loginRepo(t, "correct-horse")
	svc, _ := newTestSessionService(mockRepo)

	_, _, err := svc.Login(context.Background(), &model.LoginRequest{Username: "alice", Password: "wrong"})

	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidCredentials)
	}
	// A failed login must not touch the stored refresh token.
	if len(mockRepo.refreshTokenCalls) != 0 {
		t.Errorf("UpdateRefreshToken called %d times, want 0", len(mockRepo.refreshTokenCalls))
	}
}

func TestSessionService_Login_BlankIdentifier(t *testing.T) {
	svc, _ := newTestSessionService(&mockUserRepository{})

	_, _, err := svc.Login(context.Background(), &model.LoginRequest{Password: "whatever"})

	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

// =============================================================================
// REFRESH ROTATION TESTS
// =============================================================================

// sessionRepo wires GetByID to an in-memory user whose RefreshToken tracks
// UpdateRefreshToken calls, so rotation round-trips behave like the database.
func sessionRepo(user *model.User) *mockUserRepository {
	repo := &mockUserRepository{}
	repo.getByIDFn = func(ctx context.Context, id int64) (*model.User, error) {
		if id != user.ID {
			return nil, model.ErrUserNotFound
		}
		u := *user
		if token := repo.lastStoredToken(); len(repo.refreshTokenCalls) > 0 {
			u.RefreshToken = token
		}
		return &u, nil
	}
	return repo
}

func TestSessionService_RefreshSession_RotatesPair(t *testing.T) {
	user := &model.User{ID: 7}
	mockRepo := sessionRepo(user)
	svc, tokens := newTestSessionService(mockRepo)

	first, err := tokens.IssuePair(user.ID)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	user.RefreshToken = &first.RefreshToken

	second, err := svc.RefreshSession(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("expected rotation to succeed, got: %v", err)
	}

	// The rotation happens within the same second as the original issuance;
	// the jti claim must still make the new token distinct, or the exact-match
	// check below would pass the superseded token.
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("rotated refresh token is identical to the superseded one")
	}

	stored := mockRepo.lastStoredToken()
	if stored == nil || *stored != second.RefreshToken {
		t.Error("rotation should store the newly issued refresh token")
	}

	// The superseded token is now rejected even though it still verifies.
	if _, err := svc.RefreshSession(context.Background(), first.RefreshToken); !errors.Is(err, model.ErrRefreshTokenUsed) {
		t.Errorf("superseded token error = %v, want %v", err, model.ErrRefreshTokenUsed)
	}
}

func TestSessionService_RefreshSession_MissingToken(t *testing.T) {
	svc, _ := newTestSessionService(&mockUserRepository{})

	_, err := svc.RefreshSession(context.Background(), "")

	if !errors.Is(err, model.ErrRefreshTokenMissing) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenMissing)
	}
}

func TestSessionService_RefreshSession_GarbageToken(t *testing.T) {
	svc, _ := newTestSessionService(&mockUserRepository{})

	_, err := svc.RefreshSession(context.Background(), "not.a.jwt")

	if !errors.Is(err, model.ErrRefreshTokenInvalid) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenInvalid)
	}
}

func TestSessionService_RefreshSession_AccessTokenRejected(t *testing.T) {
	user := &model.User{ID: 7}
	svc, tokens := newTestSessionService(sessionRepo(user))

	// An access token must never pass as a refresh token even for a real user.
	accessToken, err := tokens.IssueAccessToken(user.ID)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}

	if _, err := svc.RefreshSession(context.Background(), accessToken); !errors.Is(err, model.ErrRefreshTokenInvalid) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenInvalid)
	}
}

func TestSessionService_RefreshSession_ExpiredTokenNoRotation(t *testing.T) {
	user := &model.User{ID: 7}
	mockRepo := sessionRepo(user)
	tokens := NewTokenService(&config.Config{
		AccessTokenSecret:  "access-secret-for-tests",
		RefreshTokenSecret: "refresh-secret-for-tests",
		AccessTokenMaxAge:  900,
		RefreshTokenMaxAge: -60, // already expired when issued
	})
	svc := NewSessionService(mockRepo, tokens, &mockImageUploader{})

	expired, err := tokens.IssueRefreshToken(user.ID)
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}
	user.RefreshToken = &expired

	_, err = svc.RefreshSession(context.Background(), expired)

	if !errors.Is(err, model.ErrRefreshTokenInvalid) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenInvalid)
	}
	if len(mockRepo.refreshTokenCalls) != 0 {
		t.Error("an expired token must not trigger a rotation")
	}
}

func TestSessionService_LogoutThenRefreshFails(t *testing.T) {
	user := &model.User{ID: 7}
	mockRepo := sessionRepo(user)
	svc, tokens := newTestSessionService(mockRepo)

	pair, err := tokens.IssuePair(user.ID)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	user.RefreshToken = &pair.RefreshToken

	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if stored := mockRepo.lastStoredToken(); stored != nil {
		t.Error("logout should clear the stored refresh token")
	}

	if _, err := svc.RefreshSession(context.Background(), pair.RefreshToken); !errors.Is(err, model.ErrRefreshTokenUsed) {
		t.Errorf("refresh after logout error = %v, want %v", err, model.ErrRefreshTokenUsed)
	}
}

func TestSessionService_DoubleLogin_FirstTokenInvalidated(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{ID: 7, Username: "alice", PasswordHash: hash}
	mockRepo := sessionRepo(user)
	mockRepo.getByIdentifierFn = func(ctx context.Context, identifier string) (*model.User, error) {
		u := *user
		return &u, nil
	}
	svc, _ := newTestSessionService(mockRepo)

	req := &model.LoginRequest{Username: "alice", Password: "correct-horse"}

	_, firstPair, err := svc.Login(context.Background(), req)
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	_, secondPair, err := svc.Login(context.Background(), req)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	// Back-to-back logins land in the same second; each must still issue a
	// distinct refresh token.
	if firstPair.RefreshToken == secondPair.RefreshToken {
		t.Fatal("each login should issue a distinct refresh token")
	}

	// Only the latest login's refresh token survives.
	if _, err := svc.RefreshSession(context.Background(), firstPair.RefreshToken); !errors.Is(err, model.ErrRefreshTokenUsed) {
		t.Errorf("first token error = %v, want %v", err, model.ErrRefreshTokenUsed)
	}
	if _, err := svc.RefreshSession(context.Background(), secondPair.RefreshToken); err != nil {
		t.Errorf("second token should still rotate, got: %v", err)
	}
}

// =============================================================================
// PASSWORD AND PROFILE TESTS
// =============================================================================

func TestSessionService_ChangePassword(t *testing.T) {
	mockRepo := loginRepo(t, "old-password")
	svc, _ := newTestSessionService(mockRepo)

	err := svc.ChangePassword(context.Background(), 7, "old-password", "new-password")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(mockRepo.passwordHashCalls) != 1 {
		t.Fatalf("UpdatePasswordHash called %d times, want 1", len(mockRepo.passwordHashCalls))
	}
	newHash := mockRepo.passwordHashCalls[0]
	if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-password")); err != nil {
		t.Error("stored hash should verify against the new password")
	}
}

func TestSessionService_ChangePassword_WrongCurrent(t *testing.T) {
	mockRepo := loginRepo(t, "old-password")
	svc, _ := newTestSessionService(mockRepo)

	err := svc.ChangePassword(context.Background(), 7, "not-the-password", "new-password")

	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidCredentials)
	}
	if len(mockRepo.passwordHashCalls) != 0 {
		t.Error("a failed verification must not update the stored hash")
	}
}

func TestSessionService_ChangePassword_BlankInput(t *testing.T) {
	svc, _ := newTestSessionService(&mockUserRepository{})

	if err := svc.ChangePassword(context.Background(), 7, "", "new"); !errors.Is(err, model.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestSessionService_UpdateAvatar_NoURLFromUploader(t *testing.T) {
	mockRepo := &mockUserRepository{}
	tokens := testTokenService()
	uploader := &mockImageUploader{
		avatarFn: func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
			return &model.UploadResult{}, nil
		},
	}
	svc := NewSessionService(mockRepo, tokens, uploader)

	_, err := svc.UpdateAvatar(context.Background(), 7, fakeUpload())

	if !errors.Is(err, model.ErrUpload) {
		t.Fatalf("error = %v, want %v", err, model.ErrUpload)
	}
	if strings.Contains(err.Error(), "<nil>") {
		t.Errorf("error message %q should not render a nil cause", err.Error())
	}
}

func TestSessionService_UpdateProfile_RequiresBothFields(t *testing.T) {
	svc, _ := newTestSessionService(&mockUserRepository{})

	if _, err := svc.UpdateProfile(context.Background(), 7, "Alice", " "); !errors.Is(err, model.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
	user, err := svc.UpdateProfile(context.Background(), 7, "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.FullName != "Alice" || user.Email != "alice@example.com" {
		t.Errorf("profile = (%q, %q), want updated values", user.FullName, user.Email)
	}
}
