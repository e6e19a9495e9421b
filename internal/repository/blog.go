package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/wakostech/blog-backend/domain"
)

// blogRepository coordinates the database repository and the cache. The
// usecase layer only talks to this type.
type blogRepository struct {
	db       domain.BlogDBRepository
	cache    domain.BlogCache
	userRepo domain.UserRepository

	rebuildGroup singleflight.Group
}

var _ domain.BlogRepository = (*blogRepository)(nil)

func NewBlogRepository(db domain.BlogDBRepository, cache domain.BlogCache, userRepo domain.UserRepository) *blogRepository {
	return &blogRepository{
		db:       db,
		cache:    cache,
		userRepo: userRepo,
	}
}

// Fetch returns a page of blogs. The unfiltered first page is the home
// page and is served from cache when possible.
func (r *blogRepository) Fetch(ctx context.Context, page, limit int64, category domain.Category) ([]domain.Blog, int64, error) {
	home := page <= 1 && category == ""
	if home {
		cached, err := r.cache.GetHome(ctx)
		if err == nil {
			// a cached page built for a different limit cannot serve this
			// request, rebuild from the database instead
			if cached.Limit == limit {
				return cached.Blogs, cached.Total, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logrus.Warnf("home cache get error: %v", err)
		}
	}

	blogs, total, err := r.db.Fetch(ctx, page, limit, category)
	if err != nil {
		return nil, 0, err
	}

	blogs, err = r.fillUserDetails(ctx, blogs)
	if err != nil {
		return nil, 0, err
	}

	if home {
		go func(p domain.HomePage) {
			if err := r.cache.SetHome(context.Background(), p); err != nil {
				logrus.Warnf("failed to set home cache: %v", err)
			}
		}(domain.HomePage{Blogs: blogs, Total: total, Limit: limit})
	}

	return blogs, total, nil
}

// GetByID serves from cache, rebuilding through singleflight on a miss so
// a hot blog never stampedes the database.
func (r *blogRepository) GetByID(ctx context.Context, id int64) (domain.Blog, error) {
	blog, err := r.cache.GetBlog(ctx, id)
	if err == nil {
		return blog, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get error: %v", err)
	}

	key := "blog:" + strconv.FormatInt(id, 10)
	result, err, _ := r.rebuildGroup.Do(key, func() (interface{}, error) {
		b, err := r.db.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		user, err := r.userRepo.GetByID(ctx, b.User.ID)
		if err != nil {
			return nil, err
		}
		b.User = user

		go func(blog domain.Blog) {
			if err := r.cache.SetBlog(context.Background(), &blog); err != nil {
				logrus.Warnf("failed to set blog cache: %v", err)
			}
		}(b)

		return b, nil
	})
	if err != nil {
		return domain.Blog{}, err
	}

	return result.(domain.Blog), nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (domain.Blog, error) {
	return r.db.GetBySlug(ctx, slug)
}

func (r *blogRepository) FetchByUser(ctx context.Context, userID int64) ([]domain.Blog, error) {
	blogs, err := r.db.FetchByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.fillUserDetails(ctx, blogs)
}

func (r *blogRepository) FetchPopular(ctx context.Context, limit int64) ([]domain.Blog, error) {
	blogs, err := r.db.FetchPopular(ctx, limit)
	if err != nil {
		return nil, err
	}
	return r.fillUserDetails(ctx, blogs)
}

func (r *blogRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	return r.db.FetchIDs(ctx, cursor, limit)
}

func (r *blogRepository) Store(ctx context.Context, b *domain.Blog) error {
	if err := r.db.Store(ctx, b); err != nil {
		return err
	}
	r.Invalidate(ctx, b.ID)
	return nil
}

func (r *blogRepository) Update(ctx context.Context, b *domain.Blog) error {
	if err := r.db.Update(ctx, b); err != nil {
		return err
	}
	r.Invalidate(ctx, b.ID)
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.Delete(ctx, id); err != nil {
		return err
	}
	r.Invalidate(ctx, id)
	return nil
}

// Invalidate drops the cached copies touched by a mutation. Best effort,
// the TTL bounds any staleness.
func (r *blogRepository) Invalidate(ctx context.Context, id int64) {
	if err := r.cache.DeleteBlog(ctx, id); err != nil {
		logrus.Warnf("failed to invalidate blog cache for %d: %v", id, err)
	}
	if err := r.cache.DeleteHome(ctx); err != nil {
		logrus.Warnf("failed to invalidate home cache: %v", err)
	}
}

// fillUserDetails attaches owner details to a list of blogs, fanning the
// user lookups out through an errgroup.
func (r *blogRepository) fillUserDetails(ctx context.Context, data []domain.Blog) ([]domain.Blog, error) {
	if len(data) == 0 {
		return data, nil
	}

	mapUsers := map[int64]domain.User{}
	for _, blog := range data {
		mapUsers[blog.User.ID] = domain.User{}
	}

	g, gctx := errgroup.WithContext(ctx)
	chanUser := make(chan domain.User, len(mapUsers))
	for userID := range mapUsers {
		userID := userID
		g.Go(func() error {
			res, err := r.userRepo.GetByID(gctx, userID)
			if err != nil {
				return err
			}
			chanUser <- res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(chanUser)

	for user := range chanUser {
		mapUsers[user.ID] = user
	}

	for index, item := range data {
		if u, ok := mapUsers[item.User.ID]; ok && u.ID != 0 {
			data[index].User = u
		}
	}
	return data, nil
}
