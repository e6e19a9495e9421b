package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/repository/mysql/model"
)

type engagementRepository struct {
	DB *gorm.DB
}

var _ domain.EngagementRepository = (*engagementRepository)(nil)

func NewEngagementRepository(db *gorm.DB) *engagementRepository {
	return &engagementRepository{db}
}

// blogRelation names the membership table and counter column of one blog
// engagement kind. Like and favorite toggles share the exact same shape.
type blogRelation struct {
	table   string
	counter string
}

var (
	likeRelation     = blogRelation{table: "blog_likes", counter: "likes_count"}
	favoriteRelation = blogRelation{table: "blog_favorites", counter: "favorites_count"}
)

func (r *engagementRepository) ToggleBlogLike(ctx context.Context, blogID, userID int64) (domain.EngagementState, error) {
	return r.toggleBlog(ctx, likeRelation, blogID, userID)
}

func (r *engagementRepository) ToggleBlogFavorite(ctx context.Context, blogID, userID int64) (domain.EngagementState, error) {
	return r.toggleBlog(ctx, favoriteRelation, blogID, userID)
}

// toggleBlog flips the membership row and adjusts the denormalized counter
// in one transaction. The counter update is an atomic SQL expression, not
// a read-then-write, and decrements are floored at zero.
func (r *engagementRepository) toggleBlog(ctx context.Context, rel blogRelation, blogID, userID int64) (domain.EngagementState, error) {
	var state domain.EngagementState
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member int64
		err := tx.Table(rel.table).
			Where("blog_id = ? AND user_id = ?", blogID, userID).
			Count(&member).Error
		if err != nil {
			return err
		}

		if member > 0 {
			err = tx.Exec("DELETE FROM "+rel.table+" WHERE blog_id = ? AND user_id = ?", blogID, userID).Error
			if err != nil {
				return err
			}
			err = tx.Model(&model.Blog{}).
				Where("id = ?", blogID).
				UpdateColumn(rel.counter, gorm.Expr("GREATEST("+rel.counter+" - 1, 0)")).Error
			if err != nil {
				return err
			}
			state.Active = false
		} else {
			err = tx.Table(rel.table).Create(map[string]interface{}{
				"blog_id":    blogID,
				"user_id":    userID,
				"created_at": time.Now(),
			}).Error
			if err != nil {
				return err
			}
			err = tx.Model(&model.Blog{}).
				Where("id = ?", blogID).
				UpdateColumn(rel.counter, gorm.Expr(rel.counter+" + 1")).Error
			if err != nil {
				return err
			}
			state.Active = true
		}

		var blog model.Blog
		if err := tx.Select(rel.counter).First(&blog, "id = ?", blogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if rel.counter == likeRelation.counter {
			state.Count = blog.LikesCount
		} else {
			state.Count = blog.FavoritesCount
		}
		return nil
	})
	return state, err
}

func (r *engagementRepository) ToggleCommentLike(ctx context.Context, commentID, userID int64) (domain.EngagementState, error) {
	var state domain.EngagementState
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member int64
		err := tx.Model(&model.CommentLike{}).
			Where("comment_id = ? AND user_id = ?", commentID, userID).
			Count(&member).Error
		if err != nil {
			return err
		}

		if member > 0 {
			err = tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
				Delete(&model.CommentLike{}).Error
			state.Active = false
		} else {
			err = tx.Create(&model.CommentLike{
				CommentID: commentID,
				UserID:    userID,
				CreatedAt: time.Now(),
			}).Error
			state.Active = true
		}
		if err != nil {
			return err
		}

		// No counter column for comments: the count is always derived.
		return tx.Model(&model.CommentLike{}).
			Where("comment_id = ?", commentID).
			Count(&state.Count).Error
	})
	return state, err
}

func (r *engagementRepository) BlogEngagement(ctx context.Context, blogID, userID int64) (liked, favorited bool, err error) {
	var n int64
	err = r.DB.WithContext(ctx).
		Model(&model.BlogLike{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&n).Error
	if err != nil {
		return false, false, err
	}
	liked = n > 0

	err = r.DB.WithContext(ctx).
		Model(&model.BlogFavorite{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&n).Error
	if err != nil {
		return false, false, err
	}
	return liked, n > 0, nil
}

func (r *engagementRepository) LikedBlogIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.DB.WithContext(ctx).
		Model(&model.BlogLike{}).
		Where("user_id = ?", userID).
		Order("blog_id DESC").
		Pluck("blog_id", &ids).Error
	return ids, err
}

func (r *engagementRepository) FavoriteBlogIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.DB.WithContext(ctx).
		Model(&model.BlogFavorite{}).
		Where("user_id = ?", userID).
		Order("blog_id DESC").
		Pluck("blog_id", &ids).Error
	return ids, err
}
