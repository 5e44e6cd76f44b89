package models

import "time"

// CommentLike is an existence toggle: at most one row per (user, comment).
// The composite unique index resolves concurrent double-likes.
type CommentLike struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_user_comment"`
	CommentID int64     `json:"comment_id" gorm:"not null;uniqueIndex:idx_comment_likes_user_comment;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Comment Comment `json:"comment,omitempty" gorm:"foreignKey:CommentID"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
