package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipehub/internal/httpapi/dto"
	"recipehub/internal/httpapi/service"
	"recipehub/internal/middleware"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.POST("/comments", h.Create)
	authed.DELETE("/comments/:id", h.Delete)
	authed.POST("/comments/:id/likes", h.ToggleLike)
}

// Create posts a comment on an approved recipe
// POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.Identity(c)
	comment, err := h.commentService.Create(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Delete removes a comment. Allowed for the comment author, the recipe
// owner and admins.
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	caller := middleware.Identity(c)
	if err := h.commentService.Delete(c.Request.Context(), caller, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleLike flips the caller's like on a comment
// POST /api/comments/:id/likes
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	caller := middleware.Identity(c)
	result, err := h.commentService.ToggleLike(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
