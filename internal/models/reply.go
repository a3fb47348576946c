package models

import (
	"time"

	"gorm.io/gorm"
)

// Reply is a comment on a post. Replies are read-only from the API's
// perspective: they are listed with their post and deleted with it, but no
// update or delete route exists for them.
type Reply struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PostID    uint   `gorm:"not null;index" json:"post_id"`
	Content   string `gorm:"not null" json:"content"`
	Published int64  `gorm:"not null" json:"published"`
}

// BeforeCreate assigns the published timestamp in milliseconds since epoch.
func (r *Reply) BeforeCreate(_ *gorm.DB) error {
	if r.Published == 0 {
		r.Published = time.Now().UnixMilli()
	}
	return nil
}
