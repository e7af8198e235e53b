package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/repository"
)

func setupBlogService(t *testing.T) BlogService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BlogPost{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewBlogService(repository.NewBlogRepository(db), validate, zerolog.Nop())
}

func TestBlogCreateSanitizesContent(t *testing.T) {
	svc := setupBlogService(t)

	created, err := svc.Create(context.Background(), teacher, dto.BlogCreateRequest{
		Title:    "Scholarship Deadline",
		Content:  `<p>Apply by <strong>Friday</strong></p><script>alert("x")</script>`,
		Category: models.BlogCategoryScholarship,
	})
	require.NoError(t, err)
	require.Equal(t, teacher.ID, created.AuthorID)
	require.Contains(t, created.Content, "<strong>Friday</strong>")
	require.NotContains(t, created.Content, "<script>")
	require.NotContains(t, created.Content, "alert")
}

func TestBlogCreateGuards(t *testing.T) {
	svc := setupBlogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, student, dto.BlogCreateRequest{Title: "Nope", Content: "x", Category: models.BlogCategoryNews})
	require.ErrorIs(t, err, ErrRoleNotAllowed)

	_, err = svc.Create(ctx, teacher, dto.BlogCreateRequest{Title: "Bad Category", Content: "x", Category: "gossip"})
	require.Error(t, err)
}

func TestBlogUpdateReturnsStoredRow(t *testing.T) {
	svc := setupBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, teacher, dto.BlogCreateRequest{
		Title:    "Sports Day",
		Content:  "<p>Friday on the main ground</p>",
		Category: models.BlogCategoryEvents,
	})
	require.NoError(t, err)

	title := "Sports Day (rescheduled)"
	content := `<p>Moved to <em>Saturday</em></p><img src="x" onerror="alert(1)">`
	updated, err := svc.Update(ctx, teacher, created.ID, dto.BlogUpdateRequest{Title: &title, Content: &content})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Contains(t, updated.Content, "<em>Saturday</em>")
	require.NotContains(t, updated.Content, "onerror")
	require.Equal(t, models.BlogCategoryEvents, updated.Category, "unset fields keep their value")
}

func TestBlogUpdateUnknownPost(t *testing.T) {
	svc := setupBlogService(t)

	title := "Anything"
	_, err := svc.Update(context.Background(), teacher, 404, dto.BlogUpdateRequest{Title: &title})
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestBlogDeleteIsIdempotentError(t *testing.T) {
	svc := setupBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, teacher, dto.BlogCreateRequest{Title: "Holiday Notice", Content: "<p>Closed Monday</p>", Category: models.BlogCategoryAnnouncements})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, teacher, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, teacher, created.ID), ErrPostNotFound)
	require.ErrorIs(t, svc.Delete(ctx, student, created.ID), ErrRoleNotAllowed)

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, posts)
}
