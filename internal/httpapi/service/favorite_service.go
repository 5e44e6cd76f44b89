package service

import (
	"context"

	"recipehub/internal/httpapi/authz"
	"recipehub/internal/httpapi/dto"
	"recipehub/internal/httpapi/models"
	"recipehub/internal/httpapi/repository"
)

type FavoriteService interface {
	Toggle(ctx context.Context, caller *authz.Identity, slugOrID string) (*dto.FavoriteToggleResponse, error)
	ListMine(ctx context.Context, caller *authz.Identity, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, recipeRepo repository.RecipeRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

// Toggle flips the caller's favorite on an approved recipe, same idempotent
// semantics as comment likes.
func (s *favoriteService) Toggle(ctx context.Context, caller *authz.Identity, slugOrID string) (*dto.FavoriteToggleResponse, error) {
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
	if recipe.Status != models.StatusApproved {
		return nil, ErrRecipeNotFound
	}

	favorited, err := s.favoriteRepo.Exists(ctx, caller.UserID, recipe.ID)
	if err != nil {
		return nil, err
	}

	if favorited {
		if _, err := s.favoriteRepo.Remove(ctx, caller.UserID, recipe.ID); err != nil {
			return nil, err
		}
		favorited = false
	} else {
		if err := s.favoriteRepo.Add(ctx, caller.UserID, recipe.ID); err != nil && !isUniqueViolation(err) {
			return nil, err
		}
		favorited = true
	}

	count, err := s.recipeRepo.CountFavorites(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}

	return &dto.FavoriteToggleResponse{Favorited: favorited, Count: count}, nil
}

// ListMine returns the caller's favorited recipes, most recently favorited
// first.
func (s *favoriteService) ListMine(ctx context.Context, caller *authz.Identity, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	recipes, total, err := s.recipeRepo.ListFavorites(ctx, caller.UserID, page.Take, page.Skip())
	if err != nil {
		return nil, err
	}

	items := make([]dto.RecipeSummary, 0, len(recipes))
	for i := range recipes {
		items = append(items, dto.FromModelToRecipeSummary(&recipes[i]))
	}

	return dto.NewPaginatedRecipeResponse(items, page, total), nil
}

