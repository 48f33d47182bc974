package handler

import (
	"net/http"

	"mediahub/internal/http-api/dto"
	"mediahub/internal/http-api/middleware"
	"mediahub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, auth service.AuthService) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", middleware.AuthMiddleware(auth), middleware.RequireAdmin(), h.Create)
		categories.DELETE("/:slug", middleware.AuthMiddleware(auth), middleware.RequireAdmin(), h.Delete)
	}
}

// List is public; ?search= narrows by name substring.
// GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	categories, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, dto.CategoryFromModel(category))
	}
	c.JSON(http.StatusOK, paginated(resp, total, page, pageSize))
}

// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": dto.FieldErrors(err)})
		return
	}

	category, err := h.svc.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryFromModel(*category))
}

// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
