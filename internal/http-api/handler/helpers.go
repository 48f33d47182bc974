package handler

import (
	"errors"
	"net/http"
	"strconv"

	"mediahub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// validationErrs are the service failures surfaced as 400s.
var validationErrs = []error{
	service.ErrNameInUse,
	service.ErrEmailInUse,
	service.ErrIdentityInUse,
	service.ErrSlugInUse,
	service.ErrTitleExists,
	service.ErrReviewExists,
	service.ErrReservedName,
	service.ErrInvalidUsername,
	service.ErrInvalidSlug,
	service.ErrInvalidRole,
	service.ErrScoreOutOfRange,
	service.ErrYearOutOfRange,
	service.ErrGenreRequired,
	service.ErrUnknownGenre,
	service.ErrUnknownCategory,
	service.ErrInvalidCode,
}

// handleServiceError maps the shared failure kinds onto statuses; anything
// unrecognized is a server error with no internal detail leaked.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		for _, ve := range validationErrs {
			if errors.Is(err, ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func paginated(data interface{}, total int64, page, pageSize int) gin.H {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return gin.H{
		"data": data,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		},
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}
