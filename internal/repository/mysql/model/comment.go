package model

import (
	"time"

	"github.com/wakostech/blog-backend/domain"
)

type Comment struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	BlogID   int64  `gorm:"column:blog_id;not null;index"`
	UserID   int64  `gorm:"column:user_id;not null"`
	Content  string `gorm:"type:text;not null"`
	ParentID *int64 `gorm:"column:parent_id;index"`
	IsEdited bool   `gorm:"column:is_edited;default:false"`

	UpdatedAt time.Time `gorm:"type:datetime"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		BlogID:    c.BlogID,
		UserID:    c.UserID,
		Content:   c.Content,
		ParentID:  c.ParentID,
		IsEdited:  c.IsEdited,
		UpdatedAt: c.UpdatedAt,
		CreatedAt: c.CreatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		BlogID:    m.BlogID,
		UserID:    m.UserID,
		Content:   m.Content,
		ParentID:  m.ParentID,
		IsEdited:  m.IsEdited,
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
}
