package repository

import (
	"context"
	"fmt"

	"recipehub/internal/httpapi/models"

	"gorm.io/gorm"
)

// Visibility filter values for the admin comment list.
const (
	VisibilityAll     = "all"
	VisibilityHidden  = "hidden"
	VisibilityVisible = "visible"
)

// CommentFilter narrows AdminList results.
type CommentFilter struct {
	// Query is OR-matched against comment content, author username and
	// recipe title.
	Query      string
	Visibility string // all | hidden | visible, empty means all
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, commentID int64) (*models.Comment, error)
	ListVisibleByRecipe(ctx context.Context, recipeID int64, limit, offset int) ([]models.Comment, int64, error)
	AdminList(ctx context.Context, filter CommentFilter, limit, offset int) ([]models.Comment, int64, error)
	SetHidden(ctx context.Context, commentID int64, hidden bool) error
	SoftDeleteCascade(ctx context.Context, commentID int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Recipe").
		First(&comment, commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListVisibleByRecipe returns the comments end users see: not hidden and not
// soft-deleted, newest first.
func (r *commentRepository) ListVisibleByRecipe(ctx context.Context, recipeID int64, limit, offset int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("recipe_id = ? AND hidden = false", recipeID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Author").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) AdminList(ctx context.Context, filter CommentFilter, limit, offset int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Joins("JOIN users ON users.id = comments.author_id").
		Joins("JOIN recipes ON recipes.id = comments.recipe_id")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(
			"(comments.content ILIKE ? OR users.username ILIKE ? OR recipes.title ILIKE ?)",
			pattern, pattern, pattern,
		)
	}

	switch filter.Visibility {
	case VisibilityHidden:
		query = query.Where("comments.hidden = true")
	case VisibilityVisible:
		query = query.Where("comments.hidden = false")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Author").
		Preload("Recipe").
		Order("comments.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) SetHidden(ctx context.Context, commentID int64, hidden bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("hidden", hidden)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteCascade removes the comment's likes and then soft-deletes the
// comment in one transaction. Likes go first so a logically deleted comment
// can never be double-counted in a like aggregate.
func (r *commentRepository) SoftDeleteCascade(ctx context.Context, commentID int64) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("comment_id = ?", commentID).Delete(&models.CommentLike{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete comment likes: %w", err)
	}

	result := tx.Delete(&models.Comment{}, commentID)
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return gorm.ErrRecordNotFound
	}

	return tx.Commit().Error
}
