// Package authz holds the single authorization predicate used by every
// mutating operation. Role and ownership booleans are computed here and
// nowhere else, so call sites never re-derive them ad hoc.
package authz

import "recipehub/internal/httpapi/models"

// Identity is the resolved caller. A nil *Identity means anonymous.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller carries the admin role.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == models.RoleAdmin
}

// IsAuthor reports whether the caller owns the target entity.
func (id *Identity) IsAuthor(authorID string) bool {
	return id != nil && id.UserID != "" && id.UserID == authorID
}

// CanModifyRecipe permits recipe mutation for the recipe's author or an admin.
// Anonymous callers are always denied.
func CanModifyRecipe(id *Identity, recipe *models.Recipe) bool {
	if id == nil {
		return false
	}
	return id.IsAdmin() || id.IsAuthor(recipe.AuthorID)
}

// CanSeeRecipe reports whether the caller may observe a recipe at all.
// Unapproved recipes are visible only to their author and admins; everyone
// else gets a not-found, never a forbidden, so existence does not leak.
func CanSeeRecipe(id *Identity, recipe *models.Recipe) bool {
	if recipe.Status == models.StatusApproved {
		return true
	}
	return id.IsAdmin() || id.IsAuthor(recipe.AuthorID)
}

// CanDeleteComment permits comment deletion for the comment's author, the
// owner of the recipe the comment sits on, or an admin. The recipe-owner
// grant exists so recipe authors can moderate their own comment sections.
func CanDeleteComment(id *Identity, comment *models.Comment, recipeAuthorID string) bool {
	if id == nil {
		return false
	}
	return id.IsAdmin() || id.IsAuthor(comment.AuthorID) || id.IsAuthor(recipeAuthorID)
}
