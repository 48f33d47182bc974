package dto

import "mediahub/internal/http-api/models"

// CreateTitleRequest: admin-side title creation. Year is a pointer so the
// valid value 0 survives the required check; genre and category reference
// existing slugs.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Year        *int     `json:"year" binding:"required"`
	Description string   `json:"description" binding:"omitempty,max=1000"`
	Genre       []string `json:"genre" binding:"required,min=1"`
	Category    *string  `json:"category"`
}

// UpdateTitleRequest: partial update; a present empty category detaches it.
type UpdateTitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Year        *int     `json:"year"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Genre       []string `json:"genre" binding:"omitempty,min=1"`
	Category    *string  `json:"category"`
}

// TitleResponse is the read shape: category and genres embedded, rating
// present only when the title has reviews.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description,omitempty"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func TitleFromModel(title models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      title.Rating,
		Description: title.Description,
		Genre:       make([]GenreResponse, 0, len(title.Genres)),
	}
	for _, g := range title.Genres {
		resp.Genre = append(resp.Genre, GenreFromModel(g))
	}
	if title.Category != nil {
		c := CategoryFromModel(*title.Category)
		resp.Category = &c
	}
	return resp
}
