package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wakostech/blog-backend/domain"
)

const (
	KeyBlog = "blog:%d"
	KeyHome = "blog:home"

	blogTTL = 10 * time.Minute
	homeTTL = 30 * time.Second
)

type blogCache struct {
	client *redis.Client
}

var _ domain.BlogCache = (*blogCache)(nil)

func NewBlogCache(client *redis.Client) *blogCache {
	return &blogCache{
		client,
	}
}

func (c *blogCache) GetBlog(ctx context.Context, id int64) (res domain.Blog, err error) {
	key := fmt.Sprintf(KeyBlog, id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Blog{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Blog{}, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Blog{}, err
	}
	return res, nil
}

func (c *blogCache) SetBlog(ctx context.Context, b *domain.Blog) error {
	key := fmt.Sprintf(KeyBlog, b.ID)
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, blogTTL).Err()
}

func (c *blogCache) DeleteBlog(ctx context.Context, id int64) error {
	key := fmt.Sprintf(KeyBlog, id)
	return c.client.Del(ctx, key).Err()
}

func (c *blogCache) GetHome(ctx context.Context) (domain.HomePage, error) {
	data, err := c.client.Get(ctx, KeyHome).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.HomePage{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.HomePage{}, err
	}

	var page domain.HomePage
	if err = json.Unmarshal(data, &page); err != nil {
		return domain.HomePage{}, err
	}
	return page, nil
}

func (c *blogCache) SetHome(ctx context.Context, page domain.HomePage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyHome, data, homeTTL).Err()
}

func (c *blogCache) DeleteHome(ctx context.Context) error {
	return c.client.Del(ctx, KeyHome).Err()
}
