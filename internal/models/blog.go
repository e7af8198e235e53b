package models

import "time"

// Blog post categories accepted by the portal.
const (
	BlogCategoryNews          = "news"
	BlogCategoryScholarship   = "scholarship"
	BlogCategoryEvents        = "events"
	BlogCategoryAnnouncements = "announcements"
)

// BlogPost is an announcement article authored by a teacher and readable
// by every authenticated user.
type BlogPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  string    `gorm:"size:32;not null;index" json:"category"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidBlogCategory reports whether category is one of the accepted values.
func ValidBlogCategory(category string) bool {
	switch category {
	case BlogCategoryNews, BlogCategoryScholarship, BlogCategoryEvents, BlogCategoryAnnouncements:
		return true
	}
	return false
}
