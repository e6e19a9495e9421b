package blog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wakostech/blog-backend/domain"
)

const bloomInitPageSize = 500

type Service struct {
	blogRepo  domain.BlogRepository
	bloomRepo domain.BloomRepository
	files     domain.FileStore
	stats     domain.StatsRefresher
}

var _ domain.BlogUsecase = (*Service)(nil)

// NewService will create a new blog service object
func NewService(b domain.BlogRepository, bloom domain.BloomRepository, files domain.FileStore, stats domain.StatsRefresher) *Service {
	return &Service{
		blogRepo:  b,
		bloomRepo: bloom,
		files:     files,
		stats:     stats,
	}
}

func (s *Service) Fetch(ctx context.Context, page, limit int64, category domain.Category) ([]domain.Blog, int64, error) {
	if category != "" && !category.Valid() {
		return nil, 0, domain.ErrBadParamInput
	}
	return s.blogRepo.Fetch(ctx, page, limit, category)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Blog, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return domain.Blog{}, err
	}
	return s.blogRepo.GetByID(ctx, id)
}

func (s *Service) FetchByUser(ctx context.Context, userID int64) ([]domain.Blog, error) {
	return s.blogRepo.FetchByUser(ctx, userID)
}

func (s *Service) FetchPopular(ctx context.Context, limit int64) ([]domain.Blog, error) {
	return s.blogRepo.FetchPopular(ctx, limit)
}

// Store validates the blog, fills the derived fields and persists it. The
// owner's blog count moves with the insert inside the repository
// transaction.
func (s *Service) Store(ctx context.Context, b *domain.Blog) error {
	if strings.TrimSpace(b.Title) == "" ||
		strings.TrimSpace(b.Description) == "" ||
		strings.TrimSpace(b.Image) == "" {
		return domain.ErrBadParamInput
	}

	if !b.Category.Valid() {
		b.Category = domain.DefaultCategory
	}

	slug, err := s.uniqueSlug(ctx, b.Title)
	if err != nil {
		return err
	}
	b.Slug = slug
	b.ReadingTime = domain.ReadingTimeOf(b.Description)
	if strings.TrimSpace(b.Excerpt) == "" {
		b.Excerpt = domain.ExcerptOf(b.Description)
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt

	if err := s.blogRepo.Store(ctx, b); err != nil {
		return err
	}

	if err := s.bloomRepo.Add(ctx, b.ID); err != nil {
		logrus.Warnf("failed to add blog %d to bloom filter: %v", b.ID, err)
	}
	s.stats.Touch(b.User.ID)
	return nil
}

// uniqueSlug derives the slug from the title, suffixing it when another
// blog already claimed it. Only ErrNotFound means the slug is free.
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	slug := domain.Slugify(title)
	_, err := s.blogRepo.GetBySlug(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return slug, nil
	}
	if err != nil {
		return "", err
	}
	return slug + "-" + uuid.NewString()[:8], nil
}

// Update applies the patch on behalf of userID. The slug is never
// regenerated and the owner never changes.
func (s *Service) Update(ctx context.Context, id, userID int64, patch domain.BlogPatch) (domain.Blog, error) {
	b, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Blog{}, err
	}
	if !b.OwnedBy(userID) {
		return domain.Blog{}, domain.ErrForbidden
	}

	if patch.Title != "" {
		b.Title = patch.Title
	}
	if patch.Category != "" {
		if !patch.Category.Valid() {
			return domain.Blog{}, domain.ErrBadParamInput
		}
		b.Category = patch.Category
	}
	if patch.Excerpt != "" {
		b.Excerpt = patch.Excerpt
	}
	if patch.Description != "" && patch.Description != b.Description {
		b.Description = patch.Description
		// reading time follows the description; the slug never does
		b.ReadingTime = domain.ReadingTimeOf(patch.Description)
	}
	var oldImage string
	if patch.Image != "" && patch.Image != b.Image {
		oldImage = b.Image
		b.Image = patch.Image
	}
	b.UpdatedAt = time.Now()

	if err := s.blogRepo.Update(ctx, &b); err != nil {
		return domain.Blog{}, err
	}

	// the old file goes only once the record stopped pointing at it
	if oldImage != "" && s.files.Managed(oldImage) {
		if err := s.files.Delete(ctx, oldImage); err != nil {
			logrus.Warnf("failed to delete replaced image %q: %v", oldImage, err)
		}
	}
	return b, nil
}

// Delete removes the blog on behalf of userID. Comments cascade with the
// blog; the stored image file goes too when this store owns it.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	b, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !b.OwnedBy(userID) {
		return domain.ErrForbidden
	}

	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.files.Managed(b.Image) {
		if err := s.files.Delete(ctx, b.Image); err != nil {
			logrus.Warnf("failed to delete image %q: %v", b.Image, err)
		}
	}

	s.stats.Touch(b.User.ID)
	return nil
}

// mustExist consults the bloom filter before any deeper lookup.
func (s *Service) mustExist(ctx context.Context, id int64) error {
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err != nil {
		logrus.Warnf("bloom filter check failed for blog %d: %v", id, err)
		return nil
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

// InitBloomFilter pages over every blog ID and primes the filter.
func (s *Service) InitBloomFilter(ctx context.Context) error {
	var cursor int64
	for {
		ids, err := s.blogRepo.FetchIDs(ctx, cursor, bloomInitPageSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		cursor = ids[len(ids)-1]
	}
}
