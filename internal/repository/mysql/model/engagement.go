package model

import "time"

// BlogLike is one user's like on one blog. The rows are the single source
// of truth for both the blog's likes set and the user's liked-blogs set.
type BlogLike struct {
	BlogID    int64     `gorm:"column:blog_id;not null;uniqueIndex:idx_blog_like"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_blog_like;index"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (BlogLike) TableName() string {
	return "blog_likes"
}

// BlogFavorite mirrors BlogLike for the favorites relationship.
type BlogFavorite struct {
	BlogID    int64     `gorm:"column:blog_id;not null;uniqueIndex:idx_blog_favorite"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_blog_favorite;index"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (BlogFavorite) TableName() string {
	return "blog_favorites"
}

// CommentLike has no mirrored counter column; counts are derived.
type CommentLike struct {
	CommentID int64     `gorm:"column:comment_id;not null;uniqueIndex:idx_comment_like"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_comment_like"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
