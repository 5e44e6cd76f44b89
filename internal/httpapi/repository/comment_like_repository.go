package repository

import (
	"context"
	"fmt"

	"recipehub/internal/httpapi/models"

	"gorm.io/gorm"
)

type CommentLikeRepository interface {
	Add(ctx context.Context, userID string, commentID int64) error
	Remove(ctx context.Context, userID string, commentID int64) (bool, error)
	Exists(ctx context.Context, userID string, commentID int64) (bool, error)
	Count(ctx context.Context, commentID int64) (int64, error)
}

type commentLikeRepository struct {
	db *gorm.DB
}

func NewCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &commentLikeRepository{db: db}
}

func (r *commentLikeRepository) Add(ctx context.Context, userID string, commentID int64) error {
	like := &models.CommentLike{
		UserID:    userID,
		CommentID: commentID,
	}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return fmt.Errorf("add comment like: %w", err)
	}
	return nil
}

// Remove reports whether a row was actually removed so the caller can tell a
// toggle-off from a no-op race.
func (r *commentLikeRepository) Remove(ctx context.Context, userID string, commentID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{})
	if result.Error != nil {
		return false, fmt.Errorf("remove comment like: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *commentLikeRepository) Exists(ctx context.Context, userID string, commentID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *commentLikeRepository) Count(ctx context.Context, commentID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
