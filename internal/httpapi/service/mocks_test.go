package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"recipehub/internal/httpapi/models"
	"recipehub/internal/httpapi/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- MOCK REPOSITORIES ---

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id int64) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindBySlug(ctx context.Context, slug string) (*models.Recipe, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceContents(ctx context.Context, recipe *models.Recipe, steps []models.Step, ingredients []models.Ingredient) error {
	args := m.Called(ctx, recipe, steps, ingredients)
	return args.Error(0)
}

func (m *MockRecipeRepository) List(ctx context.Context, filter repository.RecipeFilter, limit, offset int) ([]models.Recipe, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]models.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) ListFavorites(ctx context.Context, userID string, limit, offset int) ([]models.Recipe, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) DeleteCascade(ctx context.Context, recipeID int64) error {
	args := m.Called(ctx, recipeID)
	return args.Error(0)
}

func (m *MockRecipeRepository) CountFavorites(ctx context.Context, recipeID int64) (int64, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListVisibleByRecipe(ctx context.Context, recipeID int64, limit, offset int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, recipeID, limit, offset)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) AdminList(ctx context.Context, filter repository.CommentFilter, limit, offset int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) SetHidden(ctx context.Context, commentID int64, hidden bool) error {
	args := m.Called(ctx, commentID, hidden)
	return args.Error(0)
}

func (m *MockCommentRepository) SoftDeleteCascade(ctx context.Context, commentID int64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

type MockCommentLikeRepository struct {
	mock.Mock
}

func (m *MockCommentLikeRepository) Add(ctx context.Context, userID string, commentID int64) error {
	args := m.Called(ctx, userID, commentID)
	return args.Error(0)
}

func (m *MockCommentLikeRepository) Remove(ctx context.Context, userID string, commentID int64) (bool, error) {
	args := m.Called(ctx, userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentLikeRepository) Exists(ctx context.Context, userID string, commentID int64) (bool, error) {
	args := m.Called(ctx, userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentLikeRepository) Count(ctx context.Context, commentID int64) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID string, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID string, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID string, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}
