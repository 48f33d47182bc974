package service

import (
	"context"
	"errors"

	"mediahub/internal/http-api/models"
	"mediahub/internal/http-api/repository"

	"gorm.io/gorm"
)

// UpdateReviewInput carries a partial review edit.
type UpdateReviewInput struct {
	Text  *string
	Score *int
}

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, actor *Claims, titleID int64, text string, score int) (*models.Review, error)
	Update(ctx context.Context, actor *Claims, titleID, reviewID int64, in UpdateReviewInput) (*models.Review, error)
	Delete(ctx context.Context, actor *Claims, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

// Create rejects a second review by the same author up front; the unique
// (title, author) constraint settles the concurrent case the check misses.
func (s *reviewService) Create(ctx context.Context, actor *Claims, titleID int64, text string, score int) (*models.Review, error) {
	if score < 1 || score > 10 {
		return nil, ErrScoreOutOfRange
	}
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.GetByAuthorAndTitle(ctx, actor.UserID, titleID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	return s.Get(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, actor *Claims, titleID, reviewID int64, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !canModerate(actor, review.AuthorID) {
		return nil, ErrForbidden
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		if *in.Score < 1 || *in.Score > 10 {
			return nil, ErrScoreOutOfRange
		}
		review.Score = *in.Score
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *Claims, titleID, reviewID int64) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !canModerate(actor, review.AuthorID) {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(ctx, review)
}

func (s *reviewService) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// canModerate allows the author of the record plus moderators and admins.
func canModerate(actor *Claims, authorID string) bool {
	return actor.UserID == authorID || actor.IsModerator() || actor.IsAdmin()
}
