package domain

import (
	"context"
	"time"
)

// Comment domain model. A comment either sits directly under a blog
// (ParentID nil) or is a reply to a top-level comment, one level deep.
type Comment struct {
	ID       int64  `json:"id"`
	BlogID   int64  `json:"blog_id"`
	UserID   int64  `json:"user_id"`
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id,omitempty"`

	// LikesCount is derived from comment_likes rows on read; there is no
	// counter column to drift.
	LikesCount int64 `json:"likes_count"`

	IsEdited  bool      `json:"is_edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// User is the comment author, filled for responses.
	User *User `json:"user,omitempty"`
	// Replies holds the child comments of a top-level comment.
	Replies []*Comment `json:"replies,omitempty"`
}

// TopLevel reports whether the comment counts toward its blog's
// commentCount.
func (c Comment) TopLevel() bool {
	return c.ParentID == nil
}

// OwnedBy reports whether userID authored the comment.
func (c Comment) OwnedBy(userID int64) bool {
	return c.UserID == userID
}

// CommentUsecase defines the business logic contract for the comment tree.
type CommentUsecase interface {
	// Create stores the comment. Returns ErrNotFound when the blog (or the
	// parent comment) is missing and ErrBadParamInput on empty content.
	Create(ctx context.Context, c *Comment) error

	// FetchByBlog returns the blog's top-level comments newest first, each
	// with its replies attached oldest first.
	FetchByBlog(ctx context.Context, blogID int64) ([]*Comment, error)

	// Update replaces the content and marks the comment edited. Returns
	// ErrForbidden when userID is not the author.
	Update(ctx context.Context, id, userID int64, content string) (*Comment, error)

	// Delete removes the comment and, for a top-level comment, all of its
	// replies. ErrForbidden when userID is not the author.
	Delete(ctx context.Context, id, userID int64) error

	// ToggleLike flips userID's like on the comment.
	ToggleLike(ctx context.Context, id, userID int64) (EngagementState, error)
}

// CommentRepository defines the contract for comment persistence.
type CommentRepository interface {
	// Store inserts the comment; for a top-level comment the owning blog's
	// comment count is recomputed in the same transaction.
	Store(ctx context.Context, c *Comment) error

	GetByID(ctx context.Context, id int64) (*Comment, error)

	// Update persists content and the edited flag.
	Update(ctx context.Context, c *Comment) error

	// Delete removes the comment and its replies; for a top-level comment
	// the owning blog's comment count is recomputed in the same
	// transaction.
	Delete(ctx context.Context, c *Comment) error

	// FetchRoots returns a blog's top-level comments, newest first.
	FetchRoots(ctx context.Context, blogID int64) ([]*Comment, error)

	// FetchReplies returns all replies of the given top-level comment IDs,
	// oldest first.
	FetchReplies(ctx context.Context, parentIDs []int64) ([]*Comment, error)

	// CountTopLevel returns the live count of top-level comments of a blog.
	CountTopLevel(ctx context.Context, blogID int64) (int64, error)

	// LikeCounts returns the number of likes per comment ID.
	LikeCounts(ctx context.Context, ids []int64) (map[int64]int64, error)
}
