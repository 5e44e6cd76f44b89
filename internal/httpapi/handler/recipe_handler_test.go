package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recipehub/internal/httpapi/authz"
	"recipehub/internal/httpapi/dto"
	"recipehub/internal/httpapi/handler"
	"recipehub/internal/httpapi/models"
	"recipehub/internal/httpapi/service"
)

// --- MOCK SERVICES ---

type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Create(ctx context.Context, caller *authz.Identity, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) GetBySlugOrID(ctx context.Context, caller *authz.Identity, slugOrID string) (*dto.RecipeResponse, error) {
	args := m.Called(ctx, caller, slugOrID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, caller *authz.Identity, slugOrID string, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	args := m.Called(ctx, caller, slugOrID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, caller *authz.Identity, slugOrID string) error {
	args := m.Called(ctx, caller, slugOrID)
	return args.Error(0)
}

func (m *MockRecipeService) Submit(ctx context.Context, caller *authz.Identity, slugOrID string) (*dto.RecipeResponse, error) {
	args := m.Called(ctx, caller, slugOrID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) Approve(ctx context.Context, caller *authz.Identity, recipeID int64) (*dto.RecipeResponse, error) {
	args := m.Called(ctx, caller, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) Reject(ctx context.Context, caller *authz.Identity, recipeID int64, reason *string) (*dto.RecipeResponse, error) {
	args := m.Called(ctx, caller, recipeID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) ListPublic(ctx context.Context, query string, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedRecipeResponse), args.Error(1)
}

func (m *MockRecipeService) ListMine(ctx context.Context, caller *authz.Identity, status string, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error) {
	args := m.Called(ctx, caller, status, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedRecipeResponse), args.Error(1)
}

func (m *MockRecipeService) AdminList(ctx context.Context, caller *authz.Identity, status, query string, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error) {
	args := m.Called(ctx, caller, status, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedRecipeResponse), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Toggle(ctx context.Context, caller *authz.Identity, slugOrID string) (*dto.FavoriteToggleResponse, error) {
	args := m.Called(ctx, caller, slugOrID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FavoriteToggleResponse), args.Error(1)
}

func (m *MockFavoriteService) ListMine(ctx context.Context, caller *authz.Identity, page dto.PageRequest) (*dto.PaginatedRecipeResponse, error) {
	args := m.Called(ctx, caller, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedRecipeResponse), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, caller *authz.Identity, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) ListByRecipe(ctx context.Context, slugOrID string, page dto.PageRequest) (*dto.PaginatedCommentResponse, error) {
	args := m.Called(ctx, slugOrID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedCommentResponse), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, caller *authz.Identity, commentID int64) error {
	args := m.Called(ctx, caller, commentID)
	return args.Error(0)
}

func (m *MockCommentService) ToggleLike(ctx context.Context, caller *authz.Identity, commentID int64) (*dto.LikeToggleResponse, error) {
	args := m.Called(ctx, caller, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LikeToggleResponse), args.Error(1)
}

func (m *MockCommentService) SetHidden(ctx context.Context, caller *authz.Identity, commentID int64, hidden bool) (*dto.HiddenResponse, error) {
	args := m.Called(ctx, caller, commentID, hidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HiddenResponse), args.Error(1)
}

func (m *MockCommentService) AdminList(ctx context.Context, caller *authz.Identity, query, visibility string, page dto.PageRequest) (*dto.PaginatedAdminCommentResponse, error) {
	args := m.Called(ctx, caller, query, visibility, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedAdminCommentResponse), args.Error(1)
}

// --- SETUP ---

// identityMiddleware stands in for the real auth middleware.
func identityMiddleware(id *authz.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != nil {
			c.Set("identity", id)
		}
		c.Next()
	}
}

func setupRecipeRouter(recipeService *MockRecipeService, favoriteService *MockFavoriteService, commentService *MockCommentService, id *authz.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewRecipeHandler(recipeService, favoriteService, commentService)

	api := r.Group("/api")
	api.Use(identityMiddleware(id))
	h.RegisterRoutes(api, api)
	return r
}

func userID() *authz.Identity {
	return &authz.Identity{UserID: "user-1", Role: models.RoleUser}
}

// --- TESTS ---

func TestRecipeHandler_List(t *testing.T) {
	mockService := new(MockRecipeService)
	r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), nil)

	t.Run("Success", func(t *testing.T) {
		expected := &dto.PaginatedRecipeResponse{
			Items: []dto.RecipeSummary{
				{ID: 1, Slug: "tacos", Title: "Tacos", Status: models.StatusApproved},
			},
			Page:      1,
			PageCount: 1,
			Total:     1,
		}
		mockService.On("ListPublic", mock.Anything, "", dto.NewPageRequest(1, 20)).Return(expected, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/recipes", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.PaginatedRecipeResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Len(t, response.Items, 1)
		assert.Equal(t, "tacos", response.Items[0].Slug)
		mockService.AssertExpectations(t)
	})

	t.Run("PaginationParamsForwarded", func(t *testing.T) {
		expected := &dto.PaginatedRecipeResponse{Items: []dto.RecipeSummary{}, Page: 2, PageCount: 1, Total: 0}
		mockService.On("ListPublic", mock.Anything, "pho", dto.NewPageRequest(2, 10)).Return(expected, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/recipes?q=pho&page=2&take=10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ExplicitZeroTakeClampsToOne", func(t *testing.T) {
		expected := &dto.PaginatedRecipeResponse{Items: []dto.RecipeSummary{}, Page: 1, PageCount: 1, Total: 0}
		mockService.On("ListPublic", mock.Anything, "", dto.NewPageRequest(1, 1)).Return(expected, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/recipes?take=0", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestRecipeHandler_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockService := new(MockRecipeService)
		r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), nil)

		mockService.On("GetBySlugOrID", mock.Anything, (*authz.Identity)(nil), "tacos").Return(&dto.RecipeResponse{
			ID: 9, Slug: "tacos", Title: "Tacos", Status: models.StatusApproved,
		}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/recipes/tacos", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockRecipeService)
		r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), nil)

		mockService.On("GetBySlugOrID", mock.Anything, (*authz.Identity)(nil), "nope").Return(nil, service.ErrRecipeNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/recipes/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("IdentityForwarded", func(t *testing.T) {
		mockService := new(MockRecipeService)
		id := userID()
		r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), id)

		mockService.On("GetBySlugOrID", mock.Anything, id, "secret-sauce").Return(&dto.RecipeResponse{
			ID: 8, Slug: "secret-sauce", Status: models.StatusPending,
		}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/recipes/secret-sauce", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestRecipeHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockRecipeService)
		id := userID()
		r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), id)

		mockService.On("Create", mock.Anything, id, mock.AnythingOfType("dto.CreateRecipeRequest")).Return(&dto.RecipeResponse{
			ID: 1, Slug: "tacos", Title: "Tacos", Status: models.StatusPending,
		}, nil).Once()

		body, _ := json.Marshal(dto.CreateRecipeRequest{Title: "Tacos"})
		req, _ := http.NewRequest(http.MethodPost, "/api/recipes", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("MissingTitleFailsBinding", func(t *testing.T) {
		mockService := new(MockRecipeService)
		r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), userID())

		req, _ := http.NewRequest(http.MethodPost, "/api/recipes", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecipeHandler_Delete(t *testing.T) {
	t.Run("NoContentOnSuccess", func(t *testing.T) {
		mockService := new(MockRecipeService)
		id := userID()
		r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), id)

		mockService.On("Delete", mock.Anything, id, "tacos").Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/recipes/tacos", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("ForbiddenForStranger", func(t *testing.T) {
		mockService := new(MockRecipeService)
		id := userID()
		r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), id)

		mockService.On("Delete", mock.Anything, id, "tacos").Return(service.ErrForbidden).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/recipes/tacos", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRecipeHandler_Submit(t *testing.T) {
	t.Run("DraftSubmitted", func(t *testing.T) {
		mockService := new(MockRecipeService)
		id := userID()
		r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), id)

		mockService.On("Submit", mock.Anything, id, "wip-stew").Return(&dto.RecipeResponse{
			ID: 8, Slug: "wip-stew", Status: models.StatusPending,
		}, nil).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/recipes/wip-stew/submit", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NonDraftRejected", func(t *testing.T) {
		mockService := new(MockRecipeService)
		id := userID()
		r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), id)

		mockService.On("Submit", mock.Anything, id, "tacos").Return(nil, service.ErrValidation).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/recipes/tacos/submit", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRecipeHandler_ToggleFavorite(t *testing.T) {
	mockFavorites := new(MockFavoriteService)
	id := userID()
	r := setupRecipeRouter(new(MockRecipeService), mockFavorites, new(MockCommentService), id)

	mockFavorites.On("Toggle", mock.Anything, id, "tacos").Return(&dto.FavoriteToggleResponse{
		Favorited: true, Count: 5,
	}, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/recipes/tacos/favorites", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response dto.FavoriteToggleResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Favorited)
	assert.Equal(t, int64(5), response.Count)
}

func TestRecipeHandler_ListMine(t *testing.T) {
	mockService := new(MockRecipeService)
	id := userID()
	r := setupRecipeRouter(mockService, new(MockFavoriteService), new(MockCommentService), id)

	expected := &dto.PaginatedRecipeResponse{
		Items: []dto.RecipeSummary{
			{ID: 8, Slug: "wip-stew", Status: models.StatusDraft},
		},
		Page: 1, PageCount: 1, Total: 1,
	}
	mockService.On("ListMine", mock.Anything, id, models.StatusDraft, dto.NewPageRequest(1, 20)).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/users/me/recipes?status=DRAFT", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestRecipeHandler_ListComments(t *testing.T) {
	mockComments := new(MockCommentService)
	r := setupRecipeRouter(new(MockRecipeService), new(MockFavoriteService), mockComments, nil)

	expected := &dto.PaginatedCommentResponse{
		Items: []dto.CommentResponse{{ID: 1, Content: "Great"}},
		Page:  1, PageCount: 1, Total: 1,
	}
	mockComments.On("ListByRecipe", mock.Anything, "tacos", dto.NewPageRequest(1, 20)).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/recipes/tacos/comments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockComments.AssertExpectations(t)
}
