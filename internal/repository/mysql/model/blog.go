package model

import (
	"time"

	"github.com/wakostech/blog-backend/domain"
)

type Blog struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:longtext;not null"`
	Image       string `gorm:"type:varchar(512);not null"`
	UserID      int64  `gorm:"column:user_id;not null;index"`
	Category    string `gorm:"type:varchar(20);not null;default:technology;index"`
	Excerpt     string `gorm:"type:varchar(200)"`
	Slug        string `gorm:"type:varchar(100);uniqueIndex"`
	ReadingTime int64  `gorm:"column:reading_time;default:0"`
	Featured    bool   `gorm:"default:false"`

	LikesCount     int64 `gorm:"column:likes_count;default:0"`
	FavoritesCount int64 `gorm:"column:favorites_count;default:0"`
	CommentCount   int64 `gorm:"column:comment_count;default:0"`

	UpdatedAt time.Time `gorm:"type:datetime"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Blog) TableName() string {
	return "blogs"
}

func (m *Blog) ToDomain() domain.Blog {
	return domain.Blog{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Image:       m.Image,
		User: domain.User{
			ID: m.UserID,
		},
		Category:       domain.Category(m.Category),
		Excerpt:        m.Excerpt,
		Slug:           m.Slug,
		ReadingTime:    m.ReadingTime,
		Featured:       m.Featured,
		LikesCount:     m.LikesCount,
		FavoritesCount: m.FavoritesCount,
		CommentCount:   m.CommentCount,
		UpdatedAt:      m.UpdatedAt,
		CreatedAt:      m.CreatedAt,
	}
}

func NewBlogFromDomain(b *domain.Blog) *Blog {
	return &Blog{
		ID:             b.ID,
		Title:          b.Title,
		Description:    b.Description,
		Image:          b.Image,
		UserID:         b.User.ID,
		Category:       string(b.Category),
		Excerpt:        b.Excerpt,
		Slug:           b.Slug,
		ReadingTime:    b.ReadingTime,
		Featured:       b.Featured,
		LikesCount:     b.LikesCount,
		FavoritesCount: b.FavoritesCount,
		CommentCount:   b.CommentCount,
		UpdatedAt:      b.UpdatedAt,
		CreatedAt:      b.CreatedAt,
	}
}
