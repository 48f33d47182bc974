package service

import (
	"context"
	"testing"
	"time"

	"mediahub/internal/config"
	"mediahub/internal/http-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) DeleteByUsername(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// MockMailer mocks the Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendConfirmationCode(to, username, code string) error {
	args := m.Called(to, username, code)
	return args.Error(0)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		AccessTokenTTL:      15 * time.Minute,
		ConfirmationCodeTTL: 24 * time.Hour,
	}
}

func newTestAuthService(userRepo *MockUserRepository, mail *MockMailer) AuthService {
	cfg := testAuthConfig()
	codes := NewCodeIssuer(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
	return NewAuthService(userRepo, codes, mail, zap.NewNop(), cfg)
}

func TestSignUp_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	mockMail.On("SendConfirmationCode", "test@example.com", "testuser", mock.AnythingOfType("string")).Return(nil)

	user, err := authService.SignUp(context.Background(), "testuser", "test@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	mockUserRepo.AssertExpectations(t)
	mockMail.AssertExpectations(t)
}

func TestSignUp_ReservedUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	user, err := authService.SignUp(context.Background(), "me", "test@example.com")

	assert.Equal(t, ErrReservedName, err)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUp_InvalidUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	user, err := authService.SignUp(context.Background(), "bad name!", "test@example.com")

	assert.Equal(t, ErrInvalidUsername, err)
	assert.Nil(t, user)
}

func TestSignUp_UsernameExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	existing := &models.User{Username: "testuser"}
	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(existing, nil)

	user, err := authService.SignUp(context.Background(), "testuser", "test@example.com")

	assert.Equal(t, ErrNameInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestSignUp_RaceOnUniqueConstraint(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(&pgconn.PgError{Code: "23505"})

	user, err := authService.SignUp(context.Background(), "testuser", "test@example.com")

	assert.Equal(t, ErrIdentityInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestSignUp_MailFailureStillSucceeds(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	mockMail.On("SendConfirmationCode", "test@example.com", "testuser", mock.AnythingOfType("string")).
		Return(assert.AnError)

	user, err := authService.SignUp(context.Background(), "testuser", "test@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	mockMail.AssertExpectations(t)
}

func TestIssueToken_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	cfg := testAuthConfig()
	codes := NewCodeIssuer(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
	authService := NewAuthService(mockUserRepo, codes, mockMail, zap.NewNop(), cfg)

	user := &models.User{
		ID:       "user-id",
		Username: "testuser",
		Email:    "test@example.com",
		Role:     models.RoleUser,
	}
	code := codes.Generate(user)

	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(user, nil)
	mockUserRepo.On("Save", mock.Anything, user).Return(nil)

	token, err := authService.IssueToken(context.Background(), "testuser", code)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	// The exchange stamps last_login, which invalidates the code.
	assert.NotNil(t, user.LastLogin)
	assert.False(t, codes.Verify(user, code))
	mockUserRepo.AssertExpectations(t)
}

func TestIssueToken_UnknownUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	mockUserRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	token, err := authService.IssueToken(context.Background(), "ghost", "whatever")

	assert.Equal(t, ErrNotFound, err)
	assert.Empty(t, token)
	mockUserRepo.AssertExpectations(t)
}

func TestIssueToken_InvalidCode(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	user := &models.User{ID: "user-id", Username: "testuser", Role: models.RoleUser}
	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(user, nil)

	token, err := authService.IssueToken(context.Background(), "testuser", "not-a-code")

	assert.Equal(t, ErrInvalidCode, err)
	assert.Empty(t, token)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	cfg := testAuthConfig()
	codes := NewCodeIssuer(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
	authService := NewAuthService(mockUserRepo, codes, mockMail, zap.NewNop(), cfg)

	user := &models.User{ID: "user-id", Username: "testuser", Role: models.RoleModerator}
	code := codes.Generate(user)
	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(user, nil)
	mockUserRepo.On("Save", mock.Anything, user).Return(nil)

	token, err := authService.IssueToken(context.Background(), "testuser", code)
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(token)

	assert.NoError(t, err)
	assert.Equal(t, "user-id", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, models.RoleModerator, claims.Role)
	assert.True(t, claims.IsModerator())
	assert.False(t, claims.IsAdmin())
}

func TestValidateToken_Expired(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	claims := Claims{
		UserID:   "user-id",
		Username: "testuser",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte("test-secret"))

	validated, err := authService.ValidateToken(tokenString)

	assert.Error(t, err)
	assert.Nil(t, validated)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockMail := new(MockMailer)
	authService := newTestAuthService(mockUserRepo, mockMail)

	claims := Claims{
		UserID: "user-id",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte("other-secret"))

	validated, err := authService.ValidateToken(tokenString)

	assert.Error(t, err)
	assert.Nil(t, validated)
}

func TestClaims_IsAdmin(t *testing.T) {
	assert.True(t, (&Claims{Role: models.RoleAdmin}).IsAdmin())
	assert.True(t, (&Claims{Role: models.RoleUser, IsStaff: true}).IsAdmin())
	assert.False(t, (&Claims{Role: models.RoleModerator}).IsAdmin())
	assert.False(t, (&Claims{Role: models.RoleUser}).IsAdmin())
}
