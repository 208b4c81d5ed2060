package blog

import "time"

type Post struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"not null"`
	Slug          string `gorm:"not null;uniqueIndex:idx_posts_slug"`
	Excerpt       string
	Body          string `gorm:"type:text"`
	CoverImageURL string
	Author        string

	Published   bool `gorm:"index"`
	PublishedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
