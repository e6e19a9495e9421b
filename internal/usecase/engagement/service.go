package engagement

import (
	"context"
	"errors"

	"github.com/wakostech/blog-backend/domain"
)

type Service struct {
	blogRepo domain.BlogRepository
	engRepo  domain.EngagementRepository
	stats    domain.StatsRefresher
}

var _ domain.EngagementUsecase = (*Service)(nil)

func NewService(blogRepo domain.BlogRepository, engRepo domain.EngagementRepository, stats domain.StatsRefresher) *Service {
	return &Service{
		blogRepo: blogRepo,
		engRepo:  engRepo,
		stats:    stats,
	}
}

func (s *Service) ToggleLike(ctx context.Context, blogID, userID int64) (domain.EngagementState, error) {
	return s.toggle(ctx, blogID, userID, s.engRepo.ToggleBlogLike)
}

func (s *Service) ToggleFavorite(ctx context.Context, blogID, userID int64) (domain.EngagementState, error) {
	return s.toggle(ctx, blogID, userID, s.engRepo.ToggleBlogFavorite)
}

func (s *Service) Status(ctx context.Context, blogID, userID int64) (liked, favorited bool, err error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return false, false, err
	}
	return s.engRepo.BlogEngagement(ctx, blogID, userID)
}

func (s *Service) LikedBlogs(ctx context.Context, userID int64) ([]domain.Blog, error) {
	ids, err := s.engRepo.LikedBlogIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

func (s *Service) FavoriteBlogs(ctx context.Context, userID int64) ([]domain.Blog, error) {
	ids, err := s.engRepo.FavoriteBlogIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

// resolve loads each blog behind the IDs, skipping ones deleted since the
// engagement row was written.
func (s *Service) resolve(ctx context.Context, ids []int64) ([]domain.Blog, error) {
	blogs := make([]domain.Blog, 0, len(ids))
	for _, id := range ids {
		b, err := s.blogRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, nil
}

func (s *Service) toggle(
	ctx context.Context,
	blogID, userID int64,
	flip func(context.Context, int64, int64) (domain.EngagementState, error),
) (domain.EngagementState, error) {
	b, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return domain.EngagementState{}, err
	}

	state, err := flip(ctx, blogID, userID)
	if err != nil {
		return domain.EngagementState{}, err
	}

	// the cached blog carries stale counters now
	s.blogRepo.Invalidate(ctx, blogID)
	s.stats.Touch(b.User.ID)
	return state, nil
}
