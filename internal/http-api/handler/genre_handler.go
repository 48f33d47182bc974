package handler

import (
	"net/http"

	"mediahub/internal/http-api/dto"
	"mediahub/internal/http-api/middleware"
	"mediahub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc service.GenreService
}

func NewGenreHandler(svc service.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup, auth service.AuthService) {
	genres := rg.Group("/genres")
	{
		genres.GET("", h.List)
		genres.POST("", middleware.AuthMiddleware(auth), middleware.RequireAdmin(), h.Create)
		genres.DELETE("/:slug", middleware.AuthMiddleware(auth), middleware.RequireAdmin(), h.Delete)
	}
}

// GET /api/v1/genres
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	genres, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]dto.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		resp = append(resp, dto.GenreFromModel(genre))
	}
	c.JSON(http.StatusOK, paginated(resp, total, page, pageSize))
}

// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": dto.FieldErrors(err)})
		return
	}

	genre, err := h.svc.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GenreFromModel(*genre))
}

// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
