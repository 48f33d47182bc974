package service

import (
	"context"
	"errors"

	"mediahub/internal/http-api/models"
	"mediahub/internal/http-api/repository"

	"gorm.io/gorm"
)

// CreateUserInput is the admin-side account creation payload.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, in CreateUserInput) (*models.User, error)
	Update(ctx context.Context, username string, in UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, username string) error
	GetSelf(ctx context.Context, actor *Claims) (*models.User, error)
	UpdateSelf(ctx context.Context, actor *Claims, in UpdateUserInput) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, page, pageSize)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Username == models.ReservedUsername {
		return nil, ErrReservedName
	}
	if !usernamePattern.MatchString(in.Username) {
		return nil, ErrInvalidUsername
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrIdentityInUse
		}
		return nil, err
	}
	return user, nil
}

// Update applies an admin-side partial update; the role field is honored.
func (s *userService) Update(ctx context.Context, username string, in UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	if in.Role != nil && !models.ValidRole(*in.Role) {
		return nil, ErrInvalidRole
	}
	if err := applyUserUpdate(user, in, true); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrIdentityInUse
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	if err := s.userRepo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetSelf(ctx context.Context, actor *Claims) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateSelf applies a profile edit. A role field supplied by a non-admin
// actor is dropped rather than rejected; the response carries the unchanged
// role so the caller can see the outcome.
func (s *userService) UpdateSelf(ctx context.Context, actor *Claims, in UpdateUserInput) (*models.User, error) {
	user, err := s.GetSelf(ctx, actor)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		in.Role = nil
	} else if in.Role != nil && !models.ValidRole(*in.Role) {
		return nil, ErrInvalidRole
	}

	if err := applyUserUpdate(user, in, actor.IsAdmin()); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrIdentityInUse
		}
		return nil, err
	}
	return user, nil
}

func applyUserUpdate(user *models.User, in UpdateUserInput, allowRole bool) error {
	if in.Username != nil {
		if *in.Username == models.ReservedUsername {
			return ErrReservedName
		}
		if !usernamePattern.MatchString(*in.Username) {
			return ErrInvalidUsername
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if allowRole && in.Role != nil {
		user.Role = *in.Role
	}
	return nil
}
