package dto

import (
	"time"

	"recipehub/internal/httpapi/models"
)

// CreateRecipeRequest for publishing a new recipe. Draft saves it without
// entering the moderation queue.
type CreateRecipeRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=5000"`
	ImageURL    *string  `json:"image_url,omitempty" binding:"omitempty,url"`
	ActiveTime  *string  `json:"active_time,omitempty"`
	TotalTime   *string  `json:"total_time,omitempty"`
	Yield       *string  `json:"yield,omitempty"`
	Steps       []string `json:"steps" binding:"omitempty,dive,required"`
	Ingredients []string `json:"ingredients" binding:"omitempty,dive,required"`
	Draft       bool     `json:"draft"`
}

// UpdateRecipeRequest for editing a recipe. Nil fields are left untouched;
// non-nil Steps/Ingredients replace the collections wholesale.
type UpdateRecipeRequest struct {
	Title       *string   `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description,omitempty" binding:"omitempty,max=5000"`
	ImageURL    *string   `json:"image_url,omitempty" binding:"omitempty,url"`
	ActiveTime  *string   `json:"active_time,omitempty"`
	TotalTime   *string   `json:"total_time,omitempty"`
	Yield       *string   `json:"yield,omitempty"`
	Steps       *[]string `json:"steps,omitempty" binding:"omitempty,dive,required"`
	Ingredients *[]string `json:"ingredients,omitempty" binding:"omitempty,dive,required"`
}

// RejectRecipeRequest carries the optional moderation note.
type RejectRecipeRequest struct {
	Reason *string `json:"reason,omitempty" binding:"omitempty,max=1000"`
}

// RecipeResponse is the full detail view.
type RecipeResponse struct {
	ID              int64        `json:"id"`
	Slug            string       `json:"slug"`
	Title           string       `json:"title"`
	Description     *string      `json:"description,omitempty"`
	ImageURL        *string      `json:"image_url,omitempty"`
	ActiveTime      *string      `json:"active_time,omitempty"`
	TotalTime       *string      `json:"total_time,omitempty"`
	Yield           *string      `json:"yield,omitempty"`
	Status          string       `json:"status"`
	ApprovedAt      *time.Time   `json:"approved_at,omitempty"`
	RejectedAt      *time.Time   `json:"rejected_at,omitempty"`
	RejectionReason *string      `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Author          UserResponse `json:"author"`
	Steps           []string     `json:"steps"`
	Ingredients     []string     `json:"ingredients"`
}

// RecipeSummary is the list view.
type RecipeSummary struct {
	ID        int64        `json:"id"`
	Slug      string       `json:"slug"`
	Title     string       `json:"title"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Author    UserResponse `json:"author"`
}

// PaginatedRecipeResponse for returning paginated recipe lists
type PaginatedRecipeResponse struct {
	Items     []RecipeSummary `json:"items"`
	Page      int             `json:"page"`
	PageCount int             `json:"page_count"`
	Total     int64           `json:"total"`
}

// FavoriteToggleResponse reports the new state after a favorite toggle.
type FavoriteToggleResponse struct {
	Favorited bool  `json:"favorited"`
	Count     int64 `json:"count"`
}

// FromModelToUserResponse converts a User model to UserResponse DTO
func FromModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// FromModelToRecipeResponse converts a Recipe model to RecipeResponse DTO
func FromModelToRecipeResponse(recipe *models.Recipe) *RecipeResponse {
	steps := make([]string, 0, len(recipe.Steps))
	for _, s := range recipe.Steps {
		steps = append(steps, s.Text)
	}
	ingredients := make([]string, 0, len(recipe.Ingredients))
	for _, i := range recipe.Ingredients {
		ingredients = append(ingredients, i.Name)
	}

	return &RecipeResponse{
		ID:              recipe.ID,
		Slug:            recipe.Slug,
		Title:           recipe.Title,
		Description:     recipe.Description,
		ImageURL:        recipe.ImageURL,
		ActiveTime:      recipe.ActiveTime,
		TotalTime:       recipe.TotalTime,
		Yield:           recipe.Yield,
		Status:          recipe.Status,
		ApprovedAt:      recipe.ApprovedAt,
		RejectedAt:      recipe.RejectedAt,
		RejectionReason: recipe.RejectionReason,
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
		Author:          FromModelToUserResponse(&recipe.Author),
		Steps:           steps,
		Ingredients:     ingredients,
	}
}

// FromModelToRecipeSummary converts a Recipe model to RecipeSummary DTO
func FromModelToRecipeSummary(recipe *models.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:        recipe.ID,
		Slug:      recipe.Slug,
		Title:     recipe.Title,
		Status:    recipe.Status,
		CreatedAt: recipe.CreatedAt,
		Author:    FromModelToUserResponse(&recipe.Author),
	}
}

// NewPaginatedRecipeResponse creates a paginated recipe response
func NewPaginatedRecipeResponse(items []RecipeSummary, page PageRequest, total int64) *PaginatedRecipeResponse {
	return &PaginatedRecipeResponse{
		Items:     items,
		Page:      page.Page,
		PageCount: PageCount(total, page.Take),
		Total:     total,
	}
}
