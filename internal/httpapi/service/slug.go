package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipehub/internal/httpapi/models"
	"recipehub/internal/httpapi/repository"
)

// parseID parses a path segment as a numeric recipe id.
func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// resolveRecipe looks a recipe up by numeric id first, falling back to slug.
// Absence maps to ErrRecipeNotFound.
func resolveRecipe(ctx context.Context, repo repository.RecipeRepository, slugOrID string) (*models.Recipe, error) {
	if id, err := parseID(slugOrID); err == nil {
		recipe, err := repo.FindByID(ctx, id)
		if err == nil {
			return recipe, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	recipe, err := repo.FindBySlug(ctx, slugOrID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// slugify lowercases the title and collapses every non-alphanumeric run into
// a single hyphen. "Grandma's Pho (v2)" -> "grandma-s-pho-v2".
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "recipe"
	}
	if len(slug) > 180 {
		cut := 180
		for cut > 0 && !utf8.RuneStart(slug[cut]) {
			cut--
		}
		slug = strings.Trim(slug[:cut], "-")
	}
	return slug
}

// uniqueSlug resolves slug collisions by numeric suffix retry, with a uuid
// fragment as the final fallback. The unique index on recipes.slug still
// backstops a racing insert.
func uniqueSlug(ctx context.Context, repo repository.RecipeRepository, title string) (string, error) {
	base := slugify(title)

	candidate := base
	for i := 2; i <= 10; i++ {
		exists, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return fmt.Sprintf("%s-%s", base, uuid.New().String()[:8]), nil
}
