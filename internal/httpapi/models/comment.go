package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID  int64          `json:"recipe_id" gorm:"not null;index"`
	AuthorID  string         `json:"author_id" gorm:"type:uuid;not null;index"`
	Content   string         `json:"content" gorm:"not null;type:text"`
	Hidden    bool           `json:"hidden" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Associations
	Author User   `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Recipe Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
