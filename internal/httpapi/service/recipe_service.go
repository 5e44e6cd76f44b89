package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipehub/internal/httpapi/authz"
	"recipehub/internal/httpapi/dto"
	"recipehub/internal/httpapi/models"
	"recipehub/internal/httpapi/repository"
)

type RecipeService interface {
	Create(ctx context.Context, caller *authz.Identity, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	GetBySlugOrID(ctx context.Context, caller *authz.Identity, slugOrID string) (*dto.RecipeResponse, error)
	Update(ctx context.Context, caller *authz.Identity, slugOrID string, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error)
	Delete(ctx context.Context, caller *authz.Identity, slugOrID string) error
	Submit(ctx context.Context, caller *authz.Identity, slugOrID string) (*dto.RecipeResponse, error)
	Approve(ctx context.Context, caller *authz.Identity, recipeID int64) (*dto.RecipeResponse, error)
	Reject(ctx context.Context, caller *authz.Identity, recipeID int64, reason *string) (*dto.RecipeResponse, error)
	ListPublic(ctx context.Context, query string, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error)
	ListMine(ctx context.Context, caller *authz.Identity, status string, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error)
	AdminList(ctx context.Context, caller *authz.Identity, status, query string, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error)
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
	logger     *slog.Logger
}

func NewRecipeService(recipeRepo repository.RecipeRepository, logger *slog.Logger) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		logger:     logger,
	}
}

// Create publishes a new recipe. It enters moderation as PENDING unless the
// author asked for a draft.
func (s *recipeService) Create(ctx context.Context, caller *authz.Identity, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	slug, err := uniqueSlug(ctx, s.recipeRepo, title)
	if err != nil {
		return nil, err
	}

	status := models.StatusPending
	if req.Draft {
		status = models.StatusDraft
	}

	recipe := &models.Recipe{
		Slug:        slug,
		Title:       title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ActiveTime:  req.ActiveTime,
		TotalTime:   req.TotalTime,
		Yield:       req.Yield,
		Status:      status,
		AuthorID:    caller.UserID,
		Steps:       buildSteps(req.Steps),
		Ingredients: buildIngredients(req.Ingredients),
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		if isUniqueViolation(err) {
			// Lost a slug race; retry once with a random suffix.
			recipe.Slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
			err = s.recipeRepo.Create(ctx, recipe)
		}
		if err != nil {
			return nil, err
		}
	}

	// Reload with author, steps and ingredients populated
	recipe, err = s.recipeRepo.FindByID(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToRecipeResponse(recipe), nil
}

// GetBySlugOrID resolves the identifier as a numeric id first, else as a
// slug. Unapproved recipes are reported as not found to everyone but their
// author and admins, so their existence never leaks.
func (s *recipeService) GetBySlugOrID(ctx context.Context, caller *authz.Identity, slugOrID string) (*dto.RecipeResponse, error) {
	recipe, err := resolveRecipe(ctx, s.recipeRepo, slugOrID)
	if err != nil {
		return nil, err
	}

	if !authz.CanSeeRecipe(caller, recipe) {
		return nil, ErrRecipeNotFound
	}

	return dto.FromModelToRecipeResponse(recipe), nil
}

// Update edits a recipe's content fields. An author edit of a REJECTED
// recipe re-enters moderation: status goes back to PENDING and the
// approval/rejection markers are cleared. Edits in any other state never
// change status.
func (s *recipeService) Update(ctx context.Context, caller *authz.Identity, slugOrID string, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	recipe, err := resolveRecipe(ctx, s.recipeRepo, slugOrID)
	if err != nil {
		return nil, err
	}
	if !authz.CanSeeRecipe(caller, recipe) {
		return nil, ErrRecipeNotFound
	}
	if !authz.CanModifyRecipe(caller, recipe) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		recipe.Title = title
	}
	if req.Description != nil {
		recipe.Description = req.Description
	}
	if req.ImageURL != nil {
		recipe.ImageURL = req.ImageURL
	}
	if req.ActiveTime != nil {
		recipe.ActiveTime = req.ActiveTime
	}
	if req.TotalTime != nil {
		recipe.TotalTime = req.TotalTime
	}
	if req.Yield != nil {
		recipe.Yield = req.Yield
	}

	// Moderation reset rule
	if recipe.Status == models.StatusRejected && caller.IsAuthor(recipe.AuthorID) {
		recipe.Status = models.StatusPending
		recipe.ApprovedAt = nil
		recipe.RejectedAt = nil
		recipe.RejectionReason = nil
	}

	var steps []models.Step
	if req.Steps != nil {
		steps = buildSteps(*req.Steps)
	}
	var ingredients []models.Ingredient
	if req.Ingredients != nil {
		ingredients = buildIngredients(*req.Ingredients)
	}

	// Detach loaded associations so Save doesn't try to upsert them; the
	// repository replaces the collections inside the same transaction.
	recipe.Steps = nil
	recipe.Ingredients = nil

	if err := s.recipeRepo.ReplaceContents(ctx, recipe, steps, ingredients); err != nil {
		return nil, err
	}

	recipe, err = s.recipeRepo.FindByID(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToRecipeResponse(recipe), nil
}

// Delete removes the recipe and all dependent rows (comments, their likes,
// favorites, steps, ingredients) in one transaction.
func (s *recipeService) Delete(ctx context.Context, caller *authz.Identity, slugOrID string) error {
	if caller == nil {
		return ErrNotAuthenticated
	}

	recipe, err := resolveRecipe(ctx, s.recipeRepo, slugOrID)
	if err != nil {
		return err
	}
	if !authz.CanSeeRecipe(caller, recipe) {
		return ErrRecipeNotFound
	}
	if !authz.CanModifyRecipe(caller, recipe) {
		return ErrForbidden
	}

	if err := s.recipeRepo.DeleteCascade(ctx, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	s.logger.Info("recipe deleted", "recipe_id", recipe.ID, "by", caller.UserID)
	return nil
}

// Submit moves a DRAFT into the moderation queue.
func (s *recipeService) Submit(ctx context.Context, caller *authz.Identity, slugOrID string) (*dto.RecipeResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	recipe, err := resolveRecipe(ctx, s.recipeRepo, slugOrID)
	if err != nil {
		return nil, err
	}
	if !authz.CanSeeRecipe(caller, recipe) {
		return nil, ErrRecipeNotFound
	}
	if !authz.CanModifyRecipe(caller, recipe) {
		return nil, ErrForbidden
	}
	if recipe.Status != models.StatusDraft {
		return nil, fmt.Errorf("%w: only drafts can be submitted", ErrValidation)
	}

	recipe.Status = models.StatusPending
	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}

	return dto.FromModelToRecipeResponse(recipe), nil
}

// Approve is an admin action and works from any state.
func (s *recipeService) Approve(ctx context.Context, caller *authz.Identity, recipeID int64) (*dto.RecipeResponse, error) {
	recipe, err := s.moderate(ctx, caller, recipeID, func(recipe *models.Recipe) {
		now := time.Now()
		recipe.Status = models.StatusApproved
		recipe.ApprovedAt = &now
		recipe.RejectedAt = nil
		recipe.RejectionReason = nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("recipe approved", "recipe_id", recipe.ID, "by", caller.UserID)
	return dto.FromModelToRecipeResponse(recipe), nil
}

// Reject is an admin action and works from any state. The reason is optional
// and surfaced to the author.
func (s *recipeService) Reject(ctx context.Context, caller *authz.Identity, recipeID int64, reason *string) (*dto.RecipeResponse, error) {
	recipe, err := s.moderate(ctx, caller, recipeID, func(recipe *models.Recipe) {
		now := time.Now()
		recipe.Status = models.StatusRejected
		recipe.RejectedAt = &now
		recipe.ApprovedAt = nil
		recipe.RejectionReason = reason
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("recipe rejected", "recipe_id", recipe.ID, "by", caller.UserID)
	return dto.FromModelToRecipeResponse(recipe), nil
}

func (s *recipeService) moderate(ctx context.Context, caller *authz.Identity, recipeID int64, transition func(*models.Recipe)) (*models.Recipe, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	transition(recipe)

	// Detach associations so Save only touches the recipe row
	recipe.Steps = nil
	recipe.Ingredients = nil
	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}

	return s.recipeRepo.FindByID(ctx, recipeID)
}

// ListPublic returns approved recipes only, newest first.
func (s *recipeService) ListPublic(ctx context.Context, query string, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error) {
	filter := repository.RecipeFilter{
		Status: models.StatusApproved,
		Query:  strings.TrimSpace(query),
	}
	return s.list(ctx, filter, page)
}

// ListMine returns the caller's own recipes in any status.
func (s *recipeService) ListMine(ctx context.Context, caller *authz.Identity, status string, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}
	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}
	filter.AuthorID = caller.UserID
	return s.list(ctx, filter, page)
}

// AdminList is the moderation queue view, ordered status asc then newest
// first so PENDING work surfaces before the settled states.
func (s *recipeService) AdminList(ctx context.Context, caller *authz.Identity, status, query string, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}
	filter.Query = strings.TrimSpace(query)
	filter.OrderByStatus = true
	return s.list(ctx, filter, page)
}

func (s *recipeService) list(ctx context.Context, filter repository.RecipeFilter, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error) {
	recipes, total, err := s.recipeRepo.List(ctx, filter, page.Take, page.Skip())
	if err != nil {
		return nil, err
	}

	items := make([]dto.RecipeSummary, 0, len(recipes))
	for i := range recipes {
		items = append(items, dto.FromModelToRecipeSummary(&recipes[i]))
	}

	return dto.NewPaginatedRecipeResponse(items, page, total), nil
}


func statusFilter(status string) (repository.RecipeFilter, error) {
	var filter repository.RecipeFilter
	switch status {
	case "":
	case models.StatusDraft, models.StatusPending, models.StatusApproved, models.StatusRejected:
		filter.Status = status
	default:
		return filter, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return filter, nil
}

func buildSteps(texts []string) []models.Step {
	steps := make([]models.Step, 0, len(texts))
	for i, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		steps = append(steps, models.Step{Position: i, Text: text})
	}
	return steps
}

func buildIngredients(names []string) []models.Ingredient {
	ingredients := make([]models.Ingredient, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{Position: i, Name: name})
	}
	return ingredients
}
