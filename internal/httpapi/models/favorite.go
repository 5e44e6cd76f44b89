package models

import "time"

// Favorite has the same toggle semantics as CommentLike, scoped to recipes.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;uniqueIndex:idx_favorites_user_recipe;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Recipe Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID"`
}

func (Favorite) TableName() string {
	return "favorites"
}
