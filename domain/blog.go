package domain

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"
)

// Category is the fixed set of blog categories.
type Category string

const (
	CategoryTechnology    Category = "technology"
	CategoryScience       Category = "science"
	CategoryBusiness      Category = "business"
	CategoryHealth        Category = "health"
	CategoryEntertainment Category = "entertainment"
	CategorySports        Category = "sports"
	CategoryLifestyle     Category = "lifestyle"

	// DefaultCategory is used when a blog is created without a category.
	DefaultCategory = CategoryTechnology
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryTechnology,
	CategoryScience,
	CategoryBusiness,
	CategoryHealth,
	CategoryEntertainment,
	CategorySports,
	CategoryLifestyle,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Blog is representing the Blog data struct
type Blog struct {
	ID          int64
	Title       string
	Description string // sanitized rich text
	Image       string // storage reference, absolute URL or data URI
	User        User   // owner, immutable after creation
	Category    Category
	Excerpt     string
	Slug        string // derived once from the title, never regenerated
	ReadingTime int64  // minutes
	Featured    bool

	LikesCount     int64
	FavoritesCount int64
	CommentCount   int64 // count of top-level comments, always recomputed

	UpdatedAt time.Time
	CreatedAt time.Time
}

// OwnedBy reports whether userID is the blog owner. Every mutating
// operation must consult it before touching the blog.
func (b Blog) OwnedBy(userID int64) bool {
	return b.User.ID == userID
}

const (
	SlugMaxLength  = 100
	ExcerptLength  = 150
	WordsPerMinute = 200
)

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a title: lowercased, everything outside
// [a-z0-9 -] stripped, whitespace runs turned into hyphens, hyphen runs
// collapsed, truncated to SlugMaxLength.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	if len(s) > SlugMaxLength {
		s = s[:SlugMaxLength]
	}
	return s
}

// ReadingTimeOf estimates reading time in minutes at WordsPerMinute,
// never below 1.
func ReadingTimeOf(description string) int64 {
	words := len(strings.Fields(description))
	minutes := int64(math.Ceil(float64(words) / float64(WordsPerMinute)))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ExcerptOf returns the first ExcerptLength characters of the description
// followed by an ellipsis. Used only when no excerpt was supplied.
func ExcerptOf(description string) string {
	r := []rune(description)
	if len(r) > ExcerptLength {
		r = r[:ExcerptLength]
	}
	return string(r) + "..."
}

// BlogPatch carries the mutable fields of an update request. Empty strings
// mean "keep the current value".
type BlogPatch struct {
	Title       string
	Description string
	Category    Category
	Excerpt     string
	Image       string
}

// BlogDBRepository defines the contract for blog persistence.
type BlogDBRepository interface {
	// Fetch retrieves a page of blogs, newest first, optionally filtered by
	// category. Returns the page and the total number of matching blogs.
	Fetch(ctx context.Context, page, limit int64, category Category) ([]Blog, int64, error)

	// GetByID retrieves a single blog. Returns ErrNotFound if missing.
	GetByID(ctx context.Context, id int64) (Blog, error)

	// GetBySlug retrieves a blog by its slug. Returns ErrNotFound if missing.
	GetBySlug(ctx context.Context, slug string) (Blog, error)

	// FetchByUser retrieves every blog owned by userID, newest first.
	FetchByUser(ctx context.Context, userID int64) ([]Blog, error)

	// FetchPopular retrieves blogs ordered by likes, favorites, recency.
	FetchPopular(ctx context.Context, limit int64) ([]Blog, error)

	// FetchIDs pages over all blog IDs, for bloom filter priming.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)

	// Store inserts the blog and increments the owner's blog count in one
	// transaction. Backfills ID and timestamps.
	Store(ctx context.Context, b *Blog) error

	// Update persists the mutable fields. The owner and slug are never
	// touched. Returns ErrNotFound if missing.
	Update(ctx context.Context, b *Blog) error

	// Delete removes the blog, its comments, comment likes and engagement
	// rows, and decrements the owner's blog count, in one transaction.
	Delete(ctx context.Context, id int64) error
}

// HomePage is the cached first page of the unfiltered listing, stored with
// the total and the page size it was built for.
type HomePage struct {
	Blogs []Blog
	Total int64
	Limit int64
}

// BlogCache caches rendered blog entities.
type BlogCache interface {
	GetBlog(ctx context.Context, id int64) (Blog, error)
	SetBlog(ctx context.Context, b *Blog) error
	DeleteBlog(ctx context.Context, id int64) error

	// Home page: first page of the blog listing.
	GetHome(ctx context.Context) (HomePage, error)
	SetHome(ctx context.Context, page HomePage) error
	DeleteHome(ctx context.Context) error
}

// BlogRepository coordinates the DB repository and the cache; the usecase
// layer only sees this interface.
type BlogRepository interface {
	Fetch(ctx context.Context, page, limit int64, category Category) ([]Blog, int64, error)
	GetByID(ctx context.Context, id int64) (Blog, error)
	GetBySlug(ctx context.Context, slug string) (Blog, error)
	FetchByUser(ctx context.Context, userID int64) ([]Blog, error)
	FetchPopular(ctx context.Context, limit int64) ([]Blog, error)
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
	Store(ctx context.Context, b *Blog) error
	Update(ctx context.Context, b *Blog) error
	Delete(ctx context.Context, id int64) error

	// Invalidate drops any cached copy of the blog after an engagement or
	// comment mutation.
	Invalidate(ctx context.Context, id int64)
}

// BlogUsecase defines the business logic contract for the blog lifecycle.
type BlogUsecase interface {
	Fetch(ctx context.Context, page, limit int64, category Category) ([]Blog, int64, error)
	GetByID(ctx context.Context, id int64) (Blog, error)
	FetchByUser(ctx context.Context, userID int64) ([]Blog, error)
	FetchPopular(ctx context.Context, limit int64) ([]Blog, error)

	// Store validates the blog, derives slug, reading time and excerpt, and
	// persists it together with the owner index update.
	Store(ctx context.Context, b *Blog) error

	// Update applies the patch on behalf of userID. Returns ErrForbidden
	// when the blog exists but belongs to someone else.
	Update(ctx context.Context, id, userID int64, patch BlogPatch) (Blog, error)

	// Delete removes the blog on behalf of userID, cascading to comments.
	Delete(ctx context.Context, id, userID int64) error

	// InitBloomFilter primes the blog-ID bloom filter from the database.
	InitBloomFilter(ctx context.Context) error
}
