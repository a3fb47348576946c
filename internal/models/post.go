// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post types and statuses persisted in the posts table.
const (
	TypePost = "post"
	TypePage = "page"

	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// Post represents a blog post or standalone page.
// Published and Updated are milliseconds since the Unix epoch.
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"not null" json:"content"`
	Type      string `gorm:"type:varchar(8);not null;default:post;index:idx_posts_feed,priority:1" json:"type"`
	Status    string `gorm:"type:varchar(8);not null;default:draft;index:idx_posts_feed,priority:2" json:"status"`
	Published int64  `gorm:"not null;index:idx_posts_feed,priority:3" json:"published"`
	Updated   int64  `gorm:"not null" json:"updated"`
	// Labels is not persisted here; attached at query time from the labels table.
	Labels []string `gorm:"-" json:"labels"`
	// Replies is not persisted here; attached on the detail route only.
	Replies []*Reply `gorm:"-" json:"replies,omitempty"`
}

// BeforeCreate assigns server-side timestamps. A caller-supplied Published
// value is honored; Updated is always set to now.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	now := time.Now().UnixMilli()
	if p.Published == 0 {
		p.Published = now
	}
	p.Updated = now
	if p.Type == "" {
		p.Type = TypePost
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	return nil
}
