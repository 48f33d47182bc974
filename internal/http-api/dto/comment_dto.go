package dto

import (
	"time"

	"mediahub/internal/http-api/models"
)

// CreateCommentRequest: comment under a review
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

// UpdateCommentRequest: full-text replacement by the author or a
// moderator/admin
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func CommentFromModel(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Author:  comment.Author.Username,
		PubDate: comment.CreatedAt,
	}
}
