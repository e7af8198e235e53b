package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/repository"
)

// ErrPostNotFound indicates the blog post id is unknown.
var ErrPostNotFound = errors.New("blog post not found")

// BlogService exposes announcement post operations. Reads are open to all
// authenticated roles; writes are teacher-only and the role is re-checked
// here even though the routes are already gated.
type BlogService interface {
	List(ctx context.Context) ([]dto.BlogPostResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.BlogCreateRequest) (dto.BlogPostResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.BlogUpdateRequest) (dto.BlogPostResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type blogService struct {
	repo      repository.BlogRepository
	validator *validator.Validate
	policy    *bluemonday.Policy
	logger    zerolog.Logger
}

// NewBlogService builds the blog service.
func NewBlogService(repo repository.BlogRepository, validate *validator.Validate, logger zerolog.Logger) BlogService {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("p", "strong", "em", "a", "ul", "ol", "li", "br")
	policy.AllowAttrs("href", "title", "target").OnElements("a")

	return &blogService{
		repo:      repo,
		validator: validate,
		policy:    policy,
		logger:    logger.With().Str("component", "blog_service").Logger(),
	}
}

func (s *blogService) List(ctx context.Context) ([]dto.BlogPostResponse, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewBlogPostResponseSlice(posts), nil
}

func (s *blogService) Create(ctx context.Context, actor Actor, payload dto.BlogCreateRequest) (dto.BlogPostResponse, error) {
	if !actor.IsTeacher() {
		return dto.BlogPostResponse{}, ErrRoleNotAllowed
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.BlogPostResponse{}, err
	}

	post := models.BlogPost{
		Title:    strings.TrimSpace(payload.Title),
		Content:  s.policy.Sanitize(payload.Content),
		Category: payload.Category,
		AuthorID: actor.ID,
	}

	if err := s.repo.Create(ctx, &post); err != nil {
		return dto.BlogPostResponse{}, err
	}

	created, err := s.repo.GetByID(ctx, post.ID)
	if err != nil {
		return dto.BlogPostResponse{}, err
	}

	s.logger.Info().Uint("post_id", created.ID).Uint("author_id", actor.ID).Msg("blog post created")

	return dto.NewBlogPostResponse(created), nil
}

func (s *blogService) Update(ctx context.Context, actor Actor, id uint, payload dto.BlogUpdateRequest) (dto.BlogPostResponse, error) {
	if !actor.IsTeacher() {
		return dto.BlogPostResponse{}, ErrRoleNotAllowed
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.BlogPostResponse{}, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BlogPostResponse{}, ErrPostNotFound
		}
		return dto.BlogPostResponse{}, err
	}

	if payload.Title != nil {
		post.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Content != nil {
		post.Content = s.policy.Sanitize(*payload.Content)
	}
	if payload.Category != nil {
		post.Category = *payload.Category
	}

	if err := s.repo.Update(ctx, &post); err != nil {
		return dto.BlogPostResponse{}, err
	}

	// Hand back the stored row, not the locally patched copy.
	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.BlogPostResponse{}, err
	}

	s.logger.Info().Uint("post_id", id).Msg("blog post updated")

	return dto.NewBlogPostResponse(updated), nil
}

func (s *blogService) Delete(ctx context.Context, actor Actor, id uint) error {
	if !actor.IsTeacher() {
		return ErrRoleNotAllowed
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPostNotFound
	}

	s.logger.Info().Uint("post_id", id).Msg("blog post deleted")

	return nil
}
