package request

import "github.com/wakostech/blog-backend/domain"

type Comment struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

// ToDomain: Request -> Domain
func (r *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		Content:  r.Content,
		ParentID: r.ParentID,
	}
}

type CommentUpdate struct {
	Content string `json:"content" binding:"required"`
}
