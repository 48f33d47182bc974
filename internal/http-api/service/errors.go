package service

import "errors"

// Failure kinds shared by the services. Handlers translate these to HTTP
// statuses; everything else bubbles up as a server error.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("insufficient permissions")

	ErrNameInUse     = errors.New("username already in use")
	ErrEmailInUse    = errors.New("email already in use")
	ErrIdentityInUse = errors.New("username or email already in use")
	ErrSlugInUse     = errors.New("name or slug already in use")
	ErrTitleExists   = errors.New("title with this name, year and category already exists")
	ErrReviewExists  = errors.New("you have already reviewed this title")

	ErrReservedName    = errors.New("username \"me\" is reserved")
	ErrInvalidUsername = errors.New("username may contain only letters, digits and @/./+/-/_")
	ErrInvalidSlug     = errors.New("slug may contain only letters, digits, hyphens and underscores")
	ErrInvalidRole     = errors.New("role must be one of: user, moderator, admin")

	ErrScoreOutOfRange = errors.New("score must be between 1 and 10")
	ErrYearOutOfRange  = errors.New("year must be between 0 and the current year")

	ErrGenreRequired    = errors.New("at least one genre is required")
	ErrUnknownGenre     = errors.New("unknown genre slug")
	ErrUnknownCategory  = errors.New("unknown category slug")
	ErrInvalidCode      = errors.New("invalid or expired confirmation code")
	ErrInvalidToken     = errors.New("invalid token")
)
