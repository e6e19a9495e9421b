package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/repository/mysql/model"
)

type userRepository struct {
	DB *gorm.DB
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository will create an implementation of domain.UserRepository
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		DB: db,
	}
}

func (m *userRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return user.ToDomain(), nil
}

func (m *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	var users []model.User
	err := m.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	res := make([]domain.User, len(users))
	for i := range users {
		res[i] = users[i].ToDomain()
	}
	return res, err
}

func (m *userRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return user.ToDomain(), nil
}

func (m *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return user.ToDomain(), nil
}

func (m *userRepository) Insert(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	result := m.DB.WithContext(ctx).Create(userModel)
	if result.Error != nil {
		return result.Error
	}

	u.ID = userModel.ID
	u.CreatedAt = userModel.CreatedAt
	return nil
}

func (m *userRepository) Update(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	// Save writes every column so false/empty preference values survive.
	return m.DB.WithContext(ctx).Save(userModel).Error
}

// RefreshStats recomputes the aggregate columns from the user's blogs.
// blog_count is maintained synchronously elsewhere; this handles the
// derived totals that are allowed to lag.
func (m *userRepository) RefreshStats(ctx context.Context, userID int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		type totals struct {
			Likes    int64
			Comments int64
		}
		var t totals
		err := tx.Model(&model.Blog{}).
			Select("COALESCE(SUM(likes_count), 0) AS likes, COALESCE(SUM(comment_count), 0) AS comments").
			Where("user_id = ?", userID).
			Scan(&t).Error
		if err != nil {
			return err
		}

		var topCategory string
		err = tx.Model(&model.Blog{}).
			Select("category").
			Where("user_id = ?", userID).
			Group("category").
			Order("COUNT(*) DESC").
			Limit(1).
			Scan(&topCategory).Error
		if err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			UpdateColumns(map[string]interface{}{
				"total_likes":           t.Likes,
				"total_comments":        t.Comments,
				"most_popular_category": topCategory,
			}).Error
	})
}
