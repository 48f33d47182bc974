package models

import "time"

type Title struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	// (name, year, category_id) is unique via idx_titles_identity in the
	// migration; the index uses COALESCE so gorm tags cannot express it.
	Name        string    `json:"name" gorm:"not null;size:100"`
	Year        int       `json:"year" gorm:"not null;index"`
	Description string    `json:"description,omitempty" gorm:"size:1000"`
	CategoryID  *int64    `json:"category_id,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`

	// Rating is the mean review score, selected as a subquery; it is never
	// written to the titles table.
	Rating *float64 `json:"rating,omitempty" gorm:"->;-:migration"`

	// Associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
