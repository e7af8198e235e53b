package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/models"
)

// BlogRepository exposes persistence helpers for blog posts.
type BlogRepository interface {
	List(ctx context.Context) ([]models.BlogPost, error)
	GetByID(ctx context.Context, id uint) (models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository constructs the repository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) List(ctx context.Context) ([]models.BlogPost, error) {
	posts := []models.BlogPost{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).First(&post, id).Error
	return post, err
}

func (r *blogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *blogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *blogRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.BlogPost{}, id)
	return result.RowsAffected, result.Error
}
