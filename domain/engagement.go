package domain

import "context"

// EngagementState is the outcome of a toggle: the resulting counter value
// and whether the actor's membership is now active.
type EngagementState struct {
	Count  int64 `json:"count"`
	Active bool  `json:"active"`
}

// EngagementRepository persists the like/favorite membership rows together
// with the denormalized counters on the blog. Each toggle runs in a single
// transaction: membership insert/delete plus an atomic counter update
// floored at zero, so concurrent toggles never produce a negative count.
type EngagementRepository interface {
	// ToggleBlogLike flips userID's membership in the blog's likes and
	// adjusts likes_count accordingly. Returns the resulting state.
	ToggleBlogLike(ctx context.Context, blogID, userID int64) (EngagementState, error)

	// ToggleBlogFavorite is symmetric to ToggleBlogLike for favorites.
	ToggleBlogFavorite(ctx context.Context, blogID, userID int64) (EngagementState, error)

	// ToggleCommentLike flips userID's like on a comment. No counter
	// column exists for comments; Count is the live row count.
	ToggleCommentLike(ctx context.Context, commentID, userID int64) (EngagementState, error)

	// BlogEngagement reports whether userID currently likes/favorites the
	// blog, for read-side responses.
	BlogEngagement(ctx context.Context, blogID, userID int64) (liked, favorited bool, err error)

	// LikedBlogIDs returns the IDs of blogs the user has liked.
	LikedBlogIDs(ctx context.Context, userID int64) ([]int64, error)

	// FavoriteBlogIDs returns the IDs of blogs the user has favorited.
	FavoriteBlogIDs(ctx context.Context, userID int64) ([]int64, error)
}

// EngagementUsecase coordinates like/favorite toggles between a blog and
// the acting user. Toggles are deliberately not idempotent.
type EngagementUsecase interface {
	ToggleLike(ctx context.Context, blogID, userID int64) (EngagementState, error)
	ToggleFavorite(ctx context.Context, blogID, userID int64) (EngagementState, error)

	// Status reports whether userID currently likes/favorites the blog.
	Status(ctx context.Context, blogID, userID int64) (liked, favorited bool, err error)

	// LikedBlogs returns the blogs the user has liked, most recent first.
	LikedBlogs(ctx context.Context, userID int64) ([]Blog, error)

	// FavoriteBlogs returns the blogs the user has favorited.
	FavoriteBlogs(ctx context.Context, userID int64) ([]Blog, error)
}
