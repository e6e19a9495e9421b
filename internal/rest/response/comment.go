package response

import "github.com/wakostech/blog-backend/domain"

type Comment struct {
	ID         int64  `json:"id"`
	BlogID     int64  `json:"blog_id"`
	UserID     int64  `json:"user_id"`
	Content    string `json:"content"`
	ParentID   *int64 `json:"parent_id,omitempty"`
	LikesCount int64  `json:"likes_count"`
	IsEdited   bool   `json:"is_edited"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`

	User *User `json:"user,omitempty"`
	// Replies holds the children of a top-level comment.
	Replies []*Comment `json:"replies,omitempty"`
}

func NewSingleCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:         c.ID,
		BlogID:     c.BlogID,
		UserID:     c.UserID,
		Content:    c.Content,
		ParentID:   c.ParentID,
		LikesCount: c.LikesCount,
		IsEdited:   c.IsEdited,
		CreatedAt:  c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:  c.UpdatedAt.Format(DateTimeFormat),
		User:       NewUserFromDomain(c.User),
		Replies:    nil,
	}
}

// NewCommentFromDomain: Domain -> Response, including replies.
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	root := NewSingleCommentFromDomain(c)
	if len(c.Replies) > 0 {
		replies := make([]*Comment, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, NewSingleCommentFromDomain(r))
		}
		root.Replies = replies
	}
	return root
}
