package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Failure taxonomy shared by every service. Handlers map these to HTTP
// statuses with errors.Is; anything unmatched is surfaced as a generic 500
// and logged server side.
var (
	// ErrValidation wraps malformed or missing input. Wrap it with
	// fmt.Errorf("%w: ...") so the constraint travels with the error.
	ErrValidation = errors.New("validation failed")

	// ErrNotAuthenticated means no caller identity where one is required.
	ErrNotAuthenticated = errors.New("authentication required")

	// ErrForbidden means the caller is known but lacks the role or
	// ownership relation.
	ErrForbidden = errors.New("insufficient permissions")

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")
)

// pg unique_violation
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a composite-key or unique-index
// conflict from the database.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
