package dto

import (
	"time"

	"recipehub/internal/httpapi/models"
)

// CreateCommentRequest for posting a comment on a recipe
type CreateCommentRequest struct {
	RecipeID int64  `json:"recipe_id" binding:"required"`
	Content  string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentResponse for the public comment list
type CommentResponse struct {
	ID        int64        `json:"id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	Author    UserResponse `json:"author"`
}

// AdminCommentResponse adds the moderation fields the public view omits.
type AdminCommentResponse struct {
	ID          int64        `json:"id"`
	Content     string       `json:"content"`
	Hidden      bool         `json:"hidden"`
	CreatedAt   time.Time    `json:"created_at"`
	Author      UserResponse `json:"author"`
	RecipeID    int64        `json:"recipe_id"`
	RecipeTitle string       `json:"recipe_title"`
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Items     []CommentResponse `json:"items"`
	Page      int               `json:"page"`
	PageCount int               `json:"page_count"`
	Total     int64             `json:"total"`
}

// PaginatedAdminCommentResponse for the admin moderation list
type PaginatedAdminCommentResponse struct {
	Items     []AdminCommentResponse `json:"items"`
	Page      int                    `json:"page"`
	PageCount int                    `json:"page_count"`
	Total     int64                  `json:"total"`
}

// LikeToggleResponse reports the new state after a like toggle.
type LikeToggleResponse struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

// HiddenResponse reports the comment's hidden flag after hide/unhide.
type HiddenResponse struct {
	ID     int64 `json:"id"`
	Hidden bool  `json:"hidden"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author:    FromModelToUserResponse(&comment.Author),
	}
}

// FromModelToAdminCommentResponse converts a Comment model to AdminCommentResponse DTO
func FromModelToAdminCommentResponse(comment *models.Comment) AdminCommentResponse {
	return AdminCommentResponse{
		ID:          comment.ID,
		Content:     comment.Content,
		Hidden:      comment.Hidden,
		CreatedAt:   comment.CreatedAt,
		Author:      FromModelToUserResponse(&comment.Author),
		RecipeID:    comment.RecipeID,
		RecipeTitle: comment.Recipe.Title,
	}
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(items []CommentResponse, page PageRequest, total int64) *PaginatedCommentResponse {
	return &PaginatedCommentResponse{
		Items:     items,
		Page:      page.Page,
		PageCount: PageCount(total, page.Take),
		Total:     total,
	}
}

// NewPaginatedAdminCommentResponse creates a paginated admin comment response
func NewPaginatedAdminCommentResponse(items []AdminCommentResponse, page PageRequest, total int64) *PaginatedAdminCommentResponse {
	return &PaginatedAdminCommentResponse{
		Items:     items,
		Page:      page.Page,
		PageCount: PageCount(total, page.Take),
		Total:     total,
	}
}
