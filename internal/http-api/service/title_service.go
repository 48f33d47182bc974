package service

import (
	"context"
	"errors"
	"time"

	"mediahub/internal/http-api/models"
	"mediahub/internal/http-api/repository"

	"gorm.io/gorm"
)

// CreateTitleInput is the admin-side title creation payload. Genres are
// referenced by slug, category likewise; both must already exist.
type CreateTitleInput struct {
	Name        string
	Year        int
	Description string
	GenreSlugs  []string
	Category    *string
}

// UpdateTitleInput carries a partial update; nil fields are left untouched.
// A nil GenreSlugs keeps the current genres, an empty one is rejected.
type UpdateTitleInput struct {
	Name        *string
	Year        *int
	Description *string
	GenreSlugs  []string
	Category    *string
}

type TitleService interface {
	List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, in CreateTitleInput) (*models.Title, error)
	Update(ctx context.Context, id int64, in UpdateTitleInput) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filters, page, pageSize)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, in CreateTitleInput) (*models.Title, error) {
	if err := validateYear(in.Year); err != nil {
		return nil, err
	}
	if len(in.GenreSlugs) == 0 {
		return nil, ErrGenreRequired
	}

	genres, err := s.resolveGenres(ctx, in.GenreSlugs)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
		Genres:      genres,
	}

	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Create(ctx, title); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	// Refetch so the response carries category, genres and the (absent)
	// rating in their read shape.
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, in UpdateTitleInput) (*models.Title, error) {
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := validateYear(*in.Year); err != nil {
			return nil, err
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.Category != nil {
		if *in.Category == "" {
			title.CategoryID = nil
		} else {
			category, err := s.resolveCategory(ctx, *in.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
		}
	}

	var genres []models.Genre
	if in.GenreSlugs != nil {
		if len(in.GenreSlugs) == 0 {
			return nil, ErrGenreRequired
		}
		genres, err = s.resolveGenres(ctx, in.GenreSlugs)
		if err != nil {
			return nil, err
		}
	}

	// Rating is a select-only column; clear it so Save never writes it.
	title.Rating = nil
	if err := s.titleRepo.Update(ctx, title); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	if genres != nil {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, ErrUnknownGenre
		}
	}
	return genres, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}
	return category, nil
}

func validateYear(year int) error {
	if year < 0 || year > time.Now().Year() {
		return ErrYearOutOfRange
	}
	return nil
}
