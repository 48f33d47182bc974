package dto

import (
	"time"

	"mediahub/internal/http-api/models"
)

// CreateReviewRequest: one review per author per title, score 1-10. Score
// is a pointer so binding distinguishes "missing" from zero.
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required,max=1000"`
	Score *int   `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewRequest: partial edit by the author or a moderator/admin
type UpdateReviewRequest struct {
	Text  *string `json:"text" binding:"omitempty,max=1000"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func ReviewFromModel(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Author:  review.Author.Username,
		Score:   review.Score,
		PubDate: review.CreatedAt,
	}
}
