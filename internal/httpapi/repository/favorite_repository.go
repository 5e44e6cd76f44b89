package repository

import (
	"context"
	"fmt"

	"recipehub/internal/httpapi/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID string, recipeID int64) error
	Remove(ctx context.Context, userID string, recipeID int64) (bool, error)
	Exists(ctx context.Context, userID string, recipeID int64) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID string, recipeID int64) error {
	favorite := &models.Favorite{
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID string, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, fmt.Errorf("remove favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID string, recipeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
