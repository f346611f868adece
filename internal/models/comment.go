package models

import (
	"gorm.io/gorm"
)

// Comment is a discussion entry under a trip or hotel page.
type Comment struct {
	gorm.Model
	UserID   uint          `json:"userId" gorm:"not null;index"`
	User     User          `json:"user"`
	ItemType ItemType      `json:"itemType" gorm:"not null;index:idx_comments_item"`
	ItemID   uint          `json:"itemId" gorm:"not null;index:idx_comments_item"`
	Body     string        `json:"body" gorm:"type:text;not null"`
	Likes    []CommentLike `json:"-" gorm:"foreignKey:CommentID"`

	// LikeCount and LikedByMe are filled in by the handlers, not stored.
	LikeCount int  `json:"likeCount" gorm:"-"`
	LikedByMe bool `json:"likedByMe" gorm:"-"`
}

// TableName specifies the table name
func (Comment) TableName() string {
	return "comments"
}

// CommentLike records one user liking one comment; the pair is unique so a
// repeated like toggles off instead of stacking.
type CommentLike struct {
	gorm.Model
	CommentID uint `json:"commentId" gorm:"not null;uniqueIndex:idx_comment_likes_pair"`
	UserID    uint `json:"userId" gorm:"not null;uniqueIndex:idx_comment_likes_pair"`
}

// TableName specifies the table name
func (CommentLike) TableName() string {
	return "comment_likes"
}
