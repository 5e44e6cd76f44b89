package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"recipehub/internal/httpapi/authz"
	"recipehub/internal/httpapi/dto"
	"recipehub/internal/httpapi/models"
	"recipehub/internal/httpapi/repository"
)

type CommentService interface {
	Create(ctx context.Context, caller *authz.Identity, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListByRecipe(ctx context.Context, slugOrID string, page dto.PageRequest) (*dto.PaginatedCommentResponse, error)
	Delete(ctx context.Context, caller *authz.Identity, commentID int64) error
	ToggleLike(ctx context.Context, caller *authz.Identity, commentID int64) (*dto.LikeToggleResponse, error)
	SetHidden(ctx context.Context, caller *authz.Identity, commentID int64, hidden bool) (*dto.HiddenResponse, error)
	AdminList(ctx context.Context, caller *authz.Identity, query, visibility string, page dto.PageRequest) (*dto.PaginatedAdminCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	likeRepo    repository.CommentLikeRepository
	recipeRepo  repository.RecipeRepository
	logger      *slog.Logger
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	likeRepo repository.CommentLikeRepository,
	recipeRepo repository.RecipeRepository,
	logger *slog.Logger,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		recipeRepo:  recipeRepo,
		logger:      logger,
	}
}

// Create posts a comment on an approved recipe. Recipes the caller cannot
// see behave as absent, and unapproved ones do not accept comments at all.
func (s *commentService) Create(ctx context.Context, caller *authz.Identity, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrValidation)
	}

	recipe, err := s.recipeRepo.FindByID(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if !authz.CanSeeRecipe(caller, recipe) {
		return nil, ErrRecipeNotFound
	}
	if recipe.Status != models.StatusApproved {
		return nil, fmt.Errorf("%w: recipe is not open for comments", ErrValidation)
	}

	comment := &models.Comment{
		RecipeID: recipe.ID,
		AuthorID: caller.UserID,
		Content:  content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with author populated
	comment, err = s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// ListByRecipe returns the public comment view for a recipe: hidden and
// deleted comments excluded, newest first.
func (s *commentService) ListByRecipe(ctx context.Context, slugOrID string, page dto.PageRequest) (*dto.PaginatedCommentResponse, error) {
	recipe, err := s.resolveVisibleRecipe(ctx, slugOrID)
	if err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListVisibleByRecipe(ctx, recipe.ID, page.Take, page.Skip())
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return dto.NewPaginatedCommentResponse(items, page, total), nil
}

// Delete soft-deletes a comment, removing its likes first in the same
// transaction. Allowed for the comment's author, the recipe's owner and
// admins.
func (s *commentService) Delete(ctx context.Context, caller *authz.Identity, commentID int64) error {
	if caller == nil {
		return ErrNotAuthenticated
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if !authz.CanDeleteComment(caller, comment, comment.Recipe.AuthorID) {
		return ErrForbidden
	}

	if err := s.commentRepo.SoftDeleteCascade(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	s.logger.Info("comment deleted", "comment_id", commentID, "by", caller.UserID)
	return nil
}

// ToggleLike flips the caller's like on a comment and returns the new state
// with the updated total. Toggling twice restores the original state. A
// duplicate insert lost to a concurrent toggle is treated as already-liked,
// not as a failure.
func (s *commentService) ToggleLike(ctx context.Context, caller *authz.Identity, commentID int64) (*dto.LikeToggleResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.Hidden {
		return nil, ErrCommentNotFound
	}

	liked, err := s.likeRepo.Exists(ctx, caller.UserID, commentID)
	if err != nil {
		return nil, err
	}

	if liked {
		if _, err := s.likeRepo.Remove(ctx, caller.UserID, commentID); err != nil {
			return nil, err
		}
		liked = false
	} else {
		if err := s.likeRepo.Add(ctx, caller.UserID, commentID); err != nil && !isUniqueViolation(err) {
			return nil, err
		}
		liked = true
	}

	count, err := s.likeRepo.Count(ctx, commentID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeToggleResponse{Liked: liked, Count: count}, nil
}

// SetHidden is the admin hide/unhide toggle. It never touches the
// soft-delete marker.
func (s *commentService) SetHidden(ctx context.Context, caller *authz.Identity, commentID int64, hidden bool) (*dto.HiddenResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	if err := s.commentRepo.SetHidden(ctx, commentID, hidden); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	s.logger.Info("comment visibility changed", "comment_id", commentID, "hidden", hidden, "by", caller.UserID)
	return &dto.HiddenResponse{ID: commentID, Hidden: hidden}, nil
}

// AdminList is the moderation view across all recipes.
func (s *commentService) AdminList(ctx context.Context, caller *authz.Identity, query, visibility string, page dto.PageRequest) (*dto.PaginatedAdminCommentResponse, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	switch visibility {
	case "", repository.VisibilityAll, repository.VisibilityHidden, repository.VisibilityVisible:
	default:
		return nil, fmt.Errorf("%w: unknown visibility %q", ErrValidation, visibility)
	}

	filter := repository.CommentFilter{
		Query:      strings.TrimSpace(query),
		Visibility: visibility,
	}

	comments, total, err := s.commentRepo.AdminList(ctx, filter, page.Take, page.Skip())
	if err != nil {
		return nil, err
	}

	items := make([]dto.AdminCommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.FromModelToAdminCommentResponse(&comments[i]))
	}

	return dto.NewPaginatedAdminCommentResponse(items, page, total), nil
}

// resolveVisibleRecipe resolves slug-or-id for the public comment list:
// anything not publicly approved reads as absent.
func (s *commentService) resolveVisibleRecipe(ctx context.Context, slugOrID string) (*models.Recipe, error) {
	recipe, err := resolveRecipe(ctx, s.recipeRepo, slugOrID)
	if err != nil {
		return nil, err
	}
	if recipe.Status != models.StatusApproved {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}
