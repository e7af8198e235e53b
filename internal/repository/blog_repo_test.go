package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/models"
)

func setupBlogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BlogPost{}))

	return db
}

func TestBlogRepositoryListNewestFirst(t *testing.T) {
	db := setupBlogTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	first := models.BlogPost{Title: "Exam Schedule", Content: "<p>May exams</p>", Category: models.BlogCategoryNews, AuthorID: 1, CreatedAt: time.Now().Add(-time.Hour)}
	second := models.BlogPost{Title: "Merit Scholarship", Content: "<p>Apply now</p>", Category: models.BlogCategoryScholarship, AuthorID: 1, CreatedAt: time.Now()}

	require.NoError(t, repo.Create(ctx, &first))
	require.NoError(t, repo.Create(ctx, &second))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "Merit Scholarship", posts[0].Title)
	require.Equal(t, "Exam Schedule", posts[1].Title)
}

func TestBlogRepositoryUpdatePersists(t *testing.T) {
	db := setupBlogTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	post := models.BlogPost{Title: "Sports Day", Content: "<p>Friday</p>", Category: models.BlogCategoryEvents, AuthorID: 2}
	require.NoError(t, repo.Create(ctx, &post))

	post.Title = "Sports Day (rescheduled)"
	post.Category = models.BlogCategoryAnnouncements
	require.NoError(t, repo.Update(ctx, &post))

	stored, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "Sports Day (rescheduled)", stored.Title)
	require.Equal(t, models.BlogCategoryAnnouncements, stored.Category)
}

func TestBlogRepositoryDeleteReportsRowsAffected(t *testing.T) {
	db := setupBlogTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	post := models.BlogPost{Title: "Holiday Notice", Content: "<p>Closed Monday</p>", Category: models.BlogCategoryAnnouncements, AuthorID: 2}
	require.NoError(t, repo.Create(ctx, &post))

	affected, err := repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	require.Zero(t, affected)

	_, err = repo.GetByID(ctx, post.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
