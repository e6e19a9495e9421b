package response

import "github.com/wakostech/blog-backend/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

type Blog struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Excerpt     string `json:"excerpt"`
	Slug        string `json:"slug"`
	ReadingTime int64  `json:"reading_time"`
	Featured    bool   `json:"featured"`

	LikesCount     int64 `json:"likes_count"`
	FavoritesCount int64 `json:"favorites_count"`
	CommentCount   int64 `json:"comment_count"`

	Author    *User  `json:"author,omitempty"`
	UpdatedAt string `json:"updated_at"`
	CreatedAt string `json:"created_at"`
}

// NewBlogFromDomain: Domain -> Response, full entity.
func NewBlogFromDomain(b *domain.Blog) Blog {
	r := Blog{
		ID:             b.ID,
		Title:          b.Title,
		Description:    b.Description,
		Image:          b.Image,
		Category:       string(b.Category),
		Excerpt:        b.Excerpt,
		Slug:           b.Slug,
		ReadingTime:    b.ReadingTime,
		Featured:       b.Featured,
		LikesCount:     b.LikesCount,
		FavoritesCount: b.FavoritesCount,
		CommentCount:   b.CommentCount,
		UpdatedAt:      b.UpdatedAt.Format(DateTimeFormat),
		CreatedAt:      b.CreatedAt.Format(DateTimeFormat),
	}
	if b.User.ID != 0 {
		u := NewUserFromDomain(&b.User)
		r.Author = u
	}
	return r
}

// NewBlogSummaryFromDomain: Domain -> Response, description omitted for
// listings.
func NewBlogSummaryFromDomain(b *domain.Blog) Blog {
	r := NewBlogFromDomain(b)
	r.Description = ""
	return r
}

// BlogPage is a paginated listing.
type BlogPage struct {
	Blogs []Blog `json:"blogs"`
	Total int64  `json:"total"`
	Page  int64  `json:"page"`
	Limit int64  `json:"limit"`
}
