package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipehub/internal/httpapi/dto"
	"recipehub/internal/httpapi/service"
	"recipehub/internal/middleware"
)

// AdminHandler exposes the moderation queue. Its group must carry the auth
// and admin middlewares.
type AdminHandler struct {
	recipeService  service.RecipeService
	commentService service.CommentService
}

func NewAdminHandler(recipeService service.RecipeService, commentService service.CommentService) *AdminHandler {
	return &AdminHandler{
		recipeService:  recipeService,
		commentService: commentService,
	}
}

func (h *AdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/recipes", h.ListRecipes)
	admin.POST("/recipes/:id/approve", h.ApproveRecipe)
	admin.POST("/recipes/:id/reject", h.RejectRecipe)
	admin.GET("/comments", h.ListComments)
	admin.POST("/comments/:id/hide", h.HideComment)
	admin.POST("/comments/:id/unhide", h.UnhideComment)
}

// ListRecipes returns recipes in every status, pending first
// GET /api/admin/recipes?status=&q=&page=&take=
func (h *AdminHandler) ListRecipes(c *gin.Context) {
	caller := middleware.Identity(c)
	page := pageFromQuery(c)
	result, err := h.recipeService.AdminList(c.Request.Context(), caller, c.Query("status"), c.Query("q"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ApproveRecipe publishes a pending recipe
// POST /api/admin/recipes/:id/approve
func (h *AdminHandler) ApproveRecipe(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	caller := middleware.Identity(c)
	recipe, err := h.recipeService.Approve(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// RejectRecipe rejects a pending recipe, optionally with a reason for the
// author
// POST /api/admin/recipes/:id/reject
func (h *AdminHandler) RejectRecipe(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	// The body is optional, a bare reject carries no reason.
	var req dto.RejectRecipeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	caller := middleware.Identity(c)
	recipe, err := h.recipeService.Reject(c.Request.Context(), caller, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ListComments searches all comments, hidden ones included
// GET /api/admin/comments?q=&visibility=&page=&take=
func (h *AdminHandler) ListComments(c *gin.Context) {
	caller := middleware.Identity(c)
	page := pageFromQuery(c)
	result, err := h.commentService.AdminList(c.Request.Context(), caller, c.Query("q"), c.Query("visibility"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HideComment hides a comment from public listings
// POST /api/admin/comments/:id/hide
func (h *AdminHandler) HideComment(c *gin.Context) {
	h.setHidden(c, true)
}

// UnhideComment restores a hidden comment
// POST /api/admin/comments/:id/unhide
func (h *AdminHandler) UnhideComment(c *gin.Context) {
	h.setHidden(c, false)
}

func (h *AdminHandler) setHidden(c *gin.Context, hidden bool) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	caller := middleware.Identity(c)
	result, err := h.commentService.SetHidden(c.Request.Context(), caller, id, hidden)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
