package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wakostech/blog-backend/domain"
	mysqlRepo "github.com/wakostech/blog-backend/internal/repository/mysql"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var blogColumns = []string{
	"id", "title", "description", "image", "user_id", "category", "excerpt",
	"slug", "reading_time", "featured", "likes_count", "favorites_count",
	"comment_count", "updated_at", "created_at",
}

func TestBlogGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewBlogDBRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(blogColumns).
		AddRow(12, "A Title", "a body", "cover.png", 7, "science", "a body",
			"a-title", 1, false, 3, 1, 2, now, now)
	mock.ExpectQuery("SELECT (.+) FROM `blogs` WHERE id = (.+)").WillReturnRows(rows)

	blog, err := repo.GetByID(context.Background(), 12)
	require.NoError(t, err)

	assert.Equal(t, int64(12), blog.ID)
	assert.Equal(t, "A Title", blog.Title)
	assert.Equal(t, int64(7), blog.User.ID)
	assert.Equal(t, domain.CategoryScience, blog.Category)
	assert.Equal(t, int64(3), blog.LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewBlogDBRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `blogs` WHERE id = (.+)").
		WillReturnRows(sqlmock.NewRows(blogColumns))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogGetBySlugNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewBlogDBRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `blogs` WHERE slug = (.+)").
		WillReturnRows(sqlmock.NewRows(blogColumns))

	_, err := repo.GetBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogFetchReturnsTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewBlogDBRepository(db)

	mock.ExpectQuery("SELECT count(.+) FROM `blogs`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	now := time.Now()
	rows := sqlmock.NewRows(blogColumns).
		AddRow(2, "Second", "body two", "b.png", 7, "technology", "body two",
			"second", 1, false, 0, 0, 0, now, now).
		AddRow(1, "First", "body one", "a.png", 7, "technology", "body one",
			"first", 1, false, 0, 0, 0, now, now)
	mock.ExpectQuery("SELECT (.+) FROM `blogs` .*ORDER BY created_at DESC").
		WillReturnRows(rows)

	blogs, total, err := repo.Fetch(context.Background(), 1, 2, "")
	require.NoError(t, err)

	assert.Equal(t, int64(25), total)
	require.Len(t, blogs, 2)
	assert.Equal(t, "Second", blogs[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogStoreBumpsOwnerCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewBlogDBRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `blogs`").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("UPDATE `users` SET (.+)blog_count(.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b := domain.Blog{
		Title:       "Fresh",
		Description: "a fresh body",
		Image:       "cover.png",
		User:        domain.User{ID: 7},
		Category:    domain.CategoryTechnology,
		Slug:        "fresh",
		ReadingTime: 1,
	}
	require.NoError(t, repo.Store(context.Background(), &b))
	assert.Equal(t, int64(12), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogStoreRollsBackOnMissingOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewBlogDBRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `blogs`").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("UPDATE `users` SET (.+)blog_count(.+)").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	b := domain.Blog{
		Title:       "Orphan",
		Description: "no such owner",
		Image:       "cover.png",
		User:        domain.User{ID: 404},
		Slug:        "orphan",
		ReadingTime: 1,
	}
	err := repo.Store(context.Background(), &b)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogDeleteCascadesAndFloorsOwnerCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewBlogDBRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `blogs` WHERE id = (.+)").
		WillReturnRows(sqlmock.NewRows(blogColumns).
			AddRow(12, "Doomed", "a body", "cover.png", 7, "science", "a body",
				"doomed", 1, false, 3, 1, 2, now, now))
	mock.ExpectExec("DELETE FROM `comment_likes`").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM `comments`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `blog_likes`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `blog_favorites`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `users` SET (.+)GREATEST(.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `blogs`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 12))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogFetchIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewBlogDBRepository(db)

	mock.ExpectQuery("SELECT `id` FROM `blogs` WHERE id > (.+)").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5).AddRow(6).AddRow(9))

	ids, err := repo.FetchIDs(context.Background(), 4, 500)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6, 9}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
