package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/repository"
)

type stubBlogDB struct {
	domain.BlogDBRepository

	blogs   []domain.Blog
	total   int64
	fetched int
}

func (s *stubBlogDB) Fetch(ctx context.Context, page, limit int64, category domain.Category) ([]domain.Blog, int64, error) {
	s.fetched++
	if limit > int64(len(s.blogs)) {
		limit = int64(len(s.blogs))
	}
	return s.blogs[:limit], s.total, nil
}

type memBlogCache struct {
	domain.BlogCache

	mu      sync.Mutex
	home    domain.HomePage
	hasHome bool
}

func (c *memBlogCache) GetHome(ctx context.Context) (domain.HomePage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasHome {
		return domain.HomePage{}, domain.ErrCacheMiss
	}
	return c.home, nil
}

func (c *memBlogCache) SetHome(ctx context.Context, page domain.HomePage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.home = page
	c.hasHome = true
	return nil
}

type stubUserRepo struct {
	domain.UserRepository
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return domain.User{ID: id, Username: fmt.Sprintf("user%d", id)}, nil
}

func makeBlogs(n int) []domain.Blog {
	blogs := make([]domain.Blog, n)
	for i := range blogs {
		blogs[i] = domain.Blog{
			ID:    int64(i + 1),
			Title: fmt.Sprintf("Post %d", i+1),
			User:  domain.User{ID: 7},
		}
	}
	return blogs
}

func TestFetchWarmHomeCacheKeepsTotal(t *testing.T) {
	db := &stubBlogDB{blogs: makeBlogs(25), total: 25}
	cache := &memBlogCache{
		home:    domain.HomePage{Blogs: makeBlogs(9), Total: 25, Limit: 9},
		hasHome: true,
	}
	repo := repository.NewBlogRepository(db, cache, &stubUserRepo{})

	blogs, total, err := repo.Fetch(context.Background(), 1, 9, "")
	require.NoError(t, err)
	assert.Len(t, blogs, 9)
	assert.Equal(t, int64(25), total)
	assert.Zero(t, db.fetched)
}

func TestFetchBypassesHomeCacheOnLimitMismatch(t *testing.T) {
	db := &stubBlogDB{blogs: makeBlogs(25), total: 25}
	cache := &memBlogCache{
		home:    domain.HomePage{Blogs: makeBlogs(9), Total: 25, Limit: 9},
		hasHome: true,
	}
	repo := repository.NewBlogRepository(db, cache, &stubUserRepo{})

	blogs, total, err := repo.Fetch(context.Background(), 1, 3, "")
	require.NoError(t, err)
	assert.Len(t, blogs, 3)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, 1, db.fetched)
}

func TestFetchColdHomeCacheReportsDBTotal(t *testing.T) {
	db := &stubBlogDB{blogs: makeBlogs(25), total: 25}
	cache := &memBlogCache{}
	repo := repository.NewBlogRepository(db, cache, &stubUserRepo{})

	blogs, total, err := repo.Fetch(context.Background(), 1, 9, "")
	require.NoError(t, err)
	assert.Len(t, blogs, 9)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, "user7", blogs[0].User.Username)
}
