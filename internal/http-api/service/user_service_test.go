package service

import (
	"context"
	"testing"

	"mediahub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateUser_DefaultsToUserRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(context.Background(), CreateUserInput{
		Username: "newbie",
		Email:    "newbie@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Username: "newbie",
		Email:    "newbie@example.com",
		Role:     "overlord",
	})

	assert.Equal(t, ErrInvalidRole, err)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_ReservedUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.Equal(t, ErrReservedName, err)
}

func TestUpdateUser_AdminSetsRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	stored := &models.User{ID: "user-id", Username: "target", Role: models.RoleUser}
	mockUserRepo.On("FindByUsername", mock.Anything, "target").Return(stored, nil)
	mockUserRepo.On("Save", mock.Anything, stored).Return(nil)

	role := models.RoleModerator
	user, err := svc.Update(context.Background(), "target", UpdateUserInput{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateSelf_RoleFieldIgnoredForNonAdmin(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	stored := &models.User{ID: "user-id", Username: "plain", Role: models.RoleUser}
	mockUserRepo.On("FindByID", mock.Anything, "user-id").Return(stored, nil)
	mockUserRepo.On("Save", mock.Anything, stored).Return(nil)

	role := models.RoleAdmin
	bio := "still just me"
	user, err := svc.UpdateSelf(context.Background(), actorOf("user-id", models.RoleUser),
		UpdateUserInput{Role: &role, Bio: &bio})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "still just me", user.Bio)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateSelf_AdminKeepsRoleField(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	stored := &models.User{ID: "admin-id", Username: "boss", Role: models.RoleAdmin}
	mockUserRepo.On("FindByID", mock.Anything, "admin-id").Return(stored, nil)
	mockUserRepo.On("Save", mock.Anything, stored).Return(nil)

	role := models.RoleModerator
	user, err := svc.UpdateSelf(context.Background(), actorOf("admin-id", models.RoleAdmin),
		UpdateUserInput{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
}

func TestUpdateSelf_RenameToReserved(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	stored := &models.User{ID: "user-id", Username: "plain", Role: models.RoleUser}
	mockUserRepo.On("FindByID", mock.Anything, "user-id").Return(stored, nil)

	name := "me"
	_, err := svc.UpdateSelf(context.Background(), actorOf("user-id", models.RoleUser),
		UpdateUserInput{Username: &name})

	assert.Equal(t, ErrReservedName, err)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteUser_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	mockUserRepo.On("DeleteByUsername", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "ghost")

	assert.Equal(t, ErrNotFound, err)
}

func TestGetUser_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	mockUserRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), "ghost")

	assert.Equal(t, ErrNotFound, err)
}
