package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/repository"
	"github.com/wakostech/blog-backend/internal/repository/mysql/model"
)

type blogRepository struct {
	DB *gorm.DB
}

var _ domain.BlogDBRepository = (*blogRepository)(nil)

// NewBlogDBRepository creates the database layer for blogs.
func NewBlogDBRepository(db *gorm.DB) *blogRepository {
	return &blogRepository{db}
}

func (m *blogRepository) Fetch(ctx context.Context, page, limit int64, category domain.Category) (res []domain.Blog, total int64, err error) {
	repository.PageVerify(&page, &limit)

	q := m.DB.WithContext(ctx).Model(&model.Blog{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	if err = q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []model.Blog
	err = q.Order("created_at DESC").
		Offset(int((page - 1) * limit)).
		Limit(int(limit)).
		Find(&blogs).
		Error
	if err != nil {
		return nil, 0, err
	}

	for i := range blogs {
		res = append(res, blogs[i].ToDomain())
	}
	return res, total, nil
}

func (m *blogRepository) GetByID(ctx context.Context, id int64) (res domain.Blog, err error) {
	var blog model.Blog
	err = m.DB.WithContext(ctx).First(&blog, "id = ?", id).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	return blog.ToDomain(), nil
}

func (m *blogRepository) GetBySlug(ctx context.Context, slug string) (res domain.Blog, err error) {
	var blog model.Blog
	err = m.DB.WithContext(ctx).First(&blog, "slug = ?", slug).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	return blog.ToDomain(), nil
}

func (m *blogRepository) FetchByUser(ctx context.Context, userID int64) ([]domain.Blog, error) {
	var blogs []model.Blog
	err := m.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Blog, len(blogs))
	for i := range blogs {
		res[i] = blogs[i].ToDomain()
	}
	return res, nil
}

func (m *blogRepository) FetchPopular(ctx context.Context, limit int64) ([]domain.Blog, error) {
	var blogs []model.Blog
	err := m.DB.WithContext(ctx).
		Order("likes_count DESC, favorites_count DESC, created_at DESC").
		Limit(int(limit)).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Blog, len(blogs))
	for i := range blogs {
		res[i] = blogs[i].ToDomain()
	}
	return res, nil
}

func (m *blogRepository) FetchIDs(ctx context.Context, cursor, limit int64) (ids []int64, err error) {
	err = m.DB.WithContext(ctx).
		Model(&model.Blog{}).
		Select("id").
		Where("id > ?", cursor).
		Order("id").
		Limit(int(limit)).
		Find(&ids).Error
	return
}

// Store inserts the blog and bumps the owner's blog count. Both writes
// commit or neither does.
func (m *blogRepository) Store(ctx context.Context, b *domain.Blog) error {
	blogModel := model.NewBlogFromDomain(b)
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blogModel).Error; err != nil {
			return err
		}

		result := tx.Model(&model.User{}).
			Where("id = ?", b.User.ID).
			UpdateColumn("blog_count", gorm.Expr("blog_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.ID = blogModel.ID
	b.CreatedAt = blogModel.CreatedAt
	b.UpdatedAt = blogModel.UpdatedAt
	return nil
}

// mutable blog columns; the owner reference and the slug are immutable
var blogUpdateColumns = []string{
	"title", "description", "image", "category", "excerpt",
	"reading_time", "featured", "updated_at",
}

func (m *blogRepository) Update(ctx context.Context, b *domain.Blog) error {
	blogModel := model.NewBlogFromDomain(b)
	result := m.DB.WithContext(ctx).
		Model(blogModel).
		Select(blogUpdateColumns).
		Updates(blogModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the blog with its comment tree and engagement rows, and
// decrements the owner's blog count (floored at zero), in one transaction.
func (m *blogRepository) Delete(ctx context.Context, id int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blog model.Blog
		if err := tx.First(&blog, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("blog_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&model.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&model.BlogLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&model.BlogFavorite{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", blog.UserID).
			UpdateColumn("blog_count", gorm.Expr("GREATEST(blog_count - 1, 0)")).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Blog{}, id).Error
	})
}
