package models

import "time"

// Recipe moderation statuses. A recipe starts out PENDING (or DRAFT when the
// author saves without submitting) and only an admin moves it to APPROVED or
// REJECTED. An author edit of a REJECTED recipe puts it back to PENDING.
const (
	StatusDraft    = "DRAFT"
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Recipe struct {
	ID              int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug            string     `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Title           string     `json:"title" gorm:"not null"`
	Description     *string    `json:"description,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty"`
	ActiveTime      *string    `json:"active_time,omitempty"`
	TotalTime       *string    `json:"total_time,omitempty"`
	Yield           *string    `json:"yield,omitempty"`
	Status          string     `json:"status" gorm:"not null;default:'PENDING';index"`
	AuthorID        string     `json:"author_id" gorm:"type:uuid;not null;index"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author      User         `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Steps       []Step       `json:"steps,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
	Ingredients []Ingredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// Step is an ordered instruction line owned by exactly one recipe.
// Steps are replaced wholesale on recipe edit, never merged.
type Step struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID int64  `json:"recipe_id" gorm:"not null;index"`
	Position int    `json:"position" gorm:"not null"`
	Text     string `json:"text" gorm:"not null;type:text"`
}

func (Step) TableName() string {
	return "steps"
}

// Ingredient follows the same full-replace semantics as Step.
type Ingredient struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID int64  `json:"recipe_id" gorm:"not null;index"`
	Position int    `json:"position" gorm:"not null"`
	Name     string `json:"name" gorm:"not null"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
