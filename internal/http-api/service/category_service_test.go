package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateCategory_Success(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	category, err := svc.Create(context.Background(), "Movies", "movies")

	assert.NoError(t, err)
	assert.Equal(t, "Movies", category.Name)
	assert.Equal(t, "movies", category.Slug)
	mockCategoryRepo.AssertExpectations(t)
}

func TestCreateCategory_InvalidSlug(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockCategoryRepo)

	_, err := svc.Create(context.Background(), "Movies", "not a slug!")

	assert.Equal(t, ErrInvalidSlug, err)
	mockCategoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCategory_SlugTaken(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(&pgconn.PgError{Code: "23505"})

	_, err := svc.Create(context.Background(), "Movies", "movies")

	assert.Equal(t, ErrSlugInUse, err)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("DeleteBySlug", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := svc.DeleteBySlug(context.Background(), "ghost")

	assert.Equal(t, ErrNotFound, err)
}

func TestCreateGenre_InvalidSlug(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	svc := NewGenreService(mockGenreRepo)

	_, err := svc.Create(context.Background(), "Sci Fi", "sci fi")

	assert.Equal(t, ErrInvalidSlug, err)
	mockGenreRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateGenre_Success(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	svc := NewGenreService(mockGenreRepo)

	mockGenreRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Genre")).Return(nil)

	genre, err := svc.Create(context.Background(), "Sci-Fi", "sci-fi")

	assert.NoError(t, err)
	assert.Equal(t, "sci-fi", genre.Slug)
	mockGenreRepo.AssertExpectations(t)
}
