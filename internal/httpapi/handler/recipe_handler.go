package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipehub/internal/httpapi/dto"
	"recipehub/internal/httpapi/service"
	"recipehub/internal/middleware"
)

type RecipeHandler struct {
	recipeService   service.RecipeService
	favoriteService service.FavoriteService
	commentService  service.CommentService
}

func NewRecipeHandler(recipeService service.RecipeService, favoriteService service.FavoriteService, commentService service.CommentService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		favoriteService: favoriteService,
		commentService:  commentService,
	}
}

// RegisterRoutes wires the recipe surface. The public group carries
// OptionalAuth so authors and admins can read their own unapproved recipes,
// the authed group carries the full auth middleware.
func (h *RecipeHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/recipes", h.List)
	public.GET("/recipes/:slugOrId", h.Get)
	public.GET("/recipes/:slugOrId/comments", h.ListComments)

	authed.POST("/recipes", h.Create)
	authed.PUT("/recipes/:slugOrId", h.Update)
	authed.DELETE("/recipes/:slugOrId", h.Delete)
	authed.POST("/recipes/:slugOrId/submit", h.Submit)
	authed.POST("/recipes/:slugOrId/favorites", h.ToggleFavorite)

	authed.GET("/users/me/recipes", h.ListMine)
	authed.GET("/users/me/favorites", h.ListFavorites)
}

// List returns approved recipes, newest first
// GET /api/recipes?q=&page=&take=
func (h *RecipeHandler) List(c *gin.Context) {
	page := pageFromQuery(c)
	result, err := h.recipeService.ListPublic(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns a single recipe by slug or numeric id
// GET /api/recipes/:slugOrId
func (h *RecipeHandler) Get(c *gin.Context) {
	caller := middleware.Identity(c)
	recipe, err := h.recipeService.GetBySlugOrID(c.Request.Context(), caller, c.Param("slugOrId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Create creates a recipe owned by the caller
// POST /api/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.Identity(c)
	recipe, err := h.recipeService.Create(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// Update edits a recipe the caller owns (or any recipe for admins)
// PUT /api/recipes/:slugOrId
func (h *RecipeHandler) Update(c *gin.Context) {
	var req dto.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.Identity(c)
	recipe, err := h.recipeService.Update(c.Request.Context(), caller, c.Param("slugOrId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Delete removes a recipe and everything attached to it
// DELETE /api/recipes/:slugOrId
func (h *RecipeHandler) Delete(c *gin.Context) {
	caller := middleware.Identity(c)
	if err := h.recipeService.Delete(c.Request.Context(), caller, c.Param("slugOrId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Submit moves a draft into the moderation queue
// POST /api/recipes/:slugOrId/submit
func (h *RecipeHandler) Submit(c *gin.Context) {
	caller := middleware.Identity(c)
	recipe, err := h.recipeService.Submit(c.Request.Context(), caller, c.Param("slugOrId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ToggleFavorite flips the caller's favorite mark on a recipe
// POST /api/recipes/:slugOrId/favorites
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	caller := middleware.Identity(c)
	result, err := h.favoriteService.Toggle(c.Request.Context(), caller, c.Param("slugOrId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListComments returns the visible comments on an approved recipe
// GET /api/recipes/:slugOrId/comments?page=&take=
func (h *RecipeHandler) ListComments(c *gin.Context) {
	page := pageFromQuery(c)
	result, err := h.commentService.ListByRecipe(c.Request.Context(), c.Param("slugOrId"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListMine returns the caller's own recipes in every status
// GET /api/users/me/recipes?status=&page=&take=
func (h *RecipeHandler) ListMine(c *gin.Context) {
	caller := middleware.Identity(c)
	page := pageFromQuery(c)
	result, err := h.recipeService.ListMine(c.Request.Context(), caller, c.Query("status"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListFavorites returns the caller's favorited recipes
// GET /api/users/me/favorites?page=&take=
func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	caller := middleware.Identity(c)
	page := pageFromQuery(c)
	result, err := h.favoriteService.ListMine(c.Request.Context(), caller, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
