package repository

import (
	"context"
	"fmt"

	"recipehub/internal/httpapi/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows List results. Zero values mean "no filter".
type RecipeFilter struct {
	Status   string // exact status match
	Query    string // substring match over title and description
	AuthorID string // restrict to one author's recipes
	// OrderByStatus prepends "status asc" to the default
	// "created_at desc" ordering (moderation queue view).
	OrderByStatus bool
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, id int64) (*models.Recipe, error)
	FindBySlug(ctx context.Context, slug string) (*models.Recipe, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	ReplaceContents(ctx context.Context, recipe *models.Recipe, steps []models.Step, ingredients []models.Ingredient) error
	List(ctx context.Context, filter RecipeFilter, limit, offset int) ([]models.Recipe, int64, error)
	ListFavorites(ctx context.Context, userID string, limit, offset int) ([]models.Recipe, int64, error)
	DeleteCascade(ctx context.Context, recipeID int64) error
	CountFavorites(ctx context.Context, recipeID int64) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

func (r *recipeRepository) FindByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) FindBySlug(ctx context.Context, slug string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("slug = ?", slug).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// ReplaceContents saves the recipe row and replaces its steps and ingredients
// wholesale in one transaction. Steps and ingredients are never diffed: an
// edit deletes the old rows and recreates the new set, so a failure anywhere
// rolls back the whole edit.
func (r *recipeRepository) ReplaceContents(ctx context.Context, recipe *models.Recipe, steps []models.Step, ingredients []models.Ingredient) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Save(recipe).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("save recipe: %w", err)
	}

	if steps != nil {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Step{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("clear steps: %w", err)
		}
		for i := range steps {
			steps[i].ID = 0
			steps[i].RecipeID = recipe.ID
			steps[i].Position = i
		}
		if len(steps) > 0 {
			if err := tx.Create(&steps).Error; err != nil {
				tx.Rollback()
				return fmt.Errorf("create steps: %w", err)
			}
		}
	}

	if ingredients != nil {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("clear ingredients: %w", err)
		}
		for i := range ingredients {
			ingredients[i].ID = 0
			ingredients[i].RecipeID = recipe.ID
			ingredients[i].Position = i
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				tx.Rollback()
				return fmt.Errorf("create ingredients: %w", err)
			}
		}
	}

	return tx.Commit().Error
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, limit, offset int) ([]models.Recipe, int64, error) {
	var recipes []models.Recipe
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Recipe{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("(title ILIKE ? OR COALESCE(description,'') ILIKE ?)", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at desc"
	if filter.OrderByStatus {
		order = "status asc, created_at desc"
	}

	if err := query.
		Preload("Author").
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// ListFavorites returns the approved recipes the user has favorited, most
// recently favorited first.
func (r *recipeRepository) ListFavorites(ctx context.Context, userID string, limit, offset int) ([]models.Recipe, int64, error) {
	var recipes []models.Recipe
	var total int64

	base := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ? AND recipes.status = ?", userID, models.StatusApproved)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := base.
		Preload("Author").
		Order("favorites.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// DeleteCascade removes the recipe and every dependent row in one
// transaction: comment likes first, then comments, favorites, steps,
// ingredients, and finally the recipe itself. Partial removal is never
// committed.
func (r *recipeRepository) DeleteCascade(ctx context.Context, recipeID int64) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// Soft-deleted comments still own like rows, so collect ids unscoped.
	var commentIDs []int64
	if err := tx.Unscoped().
		Model(&models.Comment{}).
		Where("recipe_id = ?", recipeID).
		Pluck("id", &commentIDs).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("collect comment ids: %w", err)
	}

	if len(commentIDs) > 0 {
		if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("delete comment likes: %w", err)
		}
	}

	if err := tx.Unscoped().Where("recipe_id = ?", recipeID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete comments: %w", err)
	}

	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Favorite{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete favorites: %w", err)
	}

	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Step{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete steps: %w", err)
	}

	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Ingredient{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete ingredients: %w", err)
	}

	result := tx.Delete(&models.Recipe{}, recipeID)
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return gorm.ErrRecordNotFound
	}

	return tx.Commit().Error
}

func (r *recipeRepository) CountFavorites(ctx context.Context, recipeID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
