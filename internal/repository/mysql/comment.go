package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

// recountTopLevel refreshes the blog's comment_count from a live count
// query. Recompute, not increment, so any drift self-heals.
func recountTopLevel(tx *gorm.DB, blogID int64) error {
	var n int64
	err := tx.Model(&model.Comment{}).
		Where("blog_id = ? AND parent_id IS NULL", blogID).
		Count(&n).Error
	if err != nil {
		return err
	}
	return tx.Model(&model.Blog{}).
		Where("id = ?", blogID).
		UpdateColumn("comment_count", n).Error
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(comment)
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(commentModel).Error; err != nil {
			return err
		}
		if commentModel.ParentID == nil {
			return recountTopLevel(tx, commentModel.BlogID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	comment.UpdatedAt = commentModel.UpdatedAt
	return nil
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	result := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{
			"content":   comment.Content,
			"is_edited": comment.IsEdited,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the comment plus its replies (one level of cascade) and,
// when the target was top-level, refreshes the blog's comment count.
func (c *commentRepository) Delete(ctx context.Context, comment *domain.Comment) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		replyIDs := tx.Model(&model.Comment{}).Select("id").Where("parent_id = ?", comment.ID)
		if err := tx.Where("comment_id IN (?)", replyIDs).Delete(&model.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&model.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", comment.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Comment{}, comment.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if comment.TopLevel() {
			return recountTopLevel(tx, comment.BlogID)
		}
		return nil
	})
}

func (c *commentRepository) FetchRoots(ctx context.Context, blogID int64) ([]*domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("blog_id = ? AND parent_id IS NULL", blogID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		domainComment := comments[i].ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) FetchReplies(ctx context.Context, parentIDs []int64) ([]*domain.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		domainComment := comments[i].ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) CountTopLevel(ctx context.Context, blogID int64) (int64, error) {
	var n int64
	err := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("blog_id = ? AND parent_id IS NULL", blogID).
		Count(&n).Error
	return n, err
}

func (c *commentRepository) LikeCounts(ctx context.Context, ids []int64) (map[int64]int64, error) {
	res := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	type row struct {
		CommentID int64
		N         int64
	}
	var rows []row
	err := c.DB.WithContext(ctx).
		Model(&model.CommentLike{}).
		Select("comment_id, COUNT(*) AS n").
		Where("comment_id IN ?", ids).
		Group("comment_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		res[r.CommentID] = r.N
	}
	return res, nil
}
