package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"mediahub/internal/config"
	"mediahub/internal/http-api/models"
	"mediahub/internal/http-api/repository"
	"mediahub/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// usernamePattern mirrors the lookup pattern of the user endpoints.
var usernamePattern = regexp.MustCompile(`^[\w@.+-]+$`)

// Claims is the per-request authorization context carried by the access
// token: the resolved actor and its role, passed explicitly to handlers
// instead of being read from shared state.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsStaff  bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin || c.IsStaff
}

func (c *Claims) IsModerator() bool {
	return c.Role == models.RoleModerator
}

type AuthService interface {
	SignUp(ctx context.Context, username, email string) (*models.User, error)
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codes          *CodeIssuer
	mail           mailer.Mailer
	logger         *zap.Logger
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes *CodeIssuer,
	mail mailer.Mailer,
	logger *zap.Logger,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codes:          codes,
		mail:           mail,
		logger:         logger,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// SignUp creates a passwordless account and emails it a confirmation code.
// Uniqueness is settled by the database constraints; the pre-checks only
// exist to produce field-specific errors on the common path.
func (s *authService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	if username == models.ReservedUsername {
		return nil, ErrReservedName
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			// Lost a race or collided on email.
			return nil, ErrIdentityInUse
		}
		return nil, err
	}

	// Dispatch is best-effort; the account stands either way and a new code
	// can be derived at any time.
	code := s.codes.Generate(user)
	if err := s.mail.SendConfirmationCode(user.Email, user.Username, code); err != nil {
		s.logger.Error("confirmation code dispatch failed",
			zap.String("username", user.Username),
			zap.Error(err),
		)
	}

	return user, nil
}

// IssueToken exchanges a confirmation code for an access token. Updating
// last_login on success invalidates the presented code.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	if !s.codes.Verify(user, code) {
		return "", ErrInvalidCode
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", err
	}

	return token, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsStaff:  user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
