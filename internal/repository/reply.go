package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ReplyRepository lists replies attached to a post. Replies are read-only
// from the API's perspective; rows are created out of band and removed by
// the post delete cascade.
type ReplyRepository interface {
	ListByPost(ctx context.Context, postID uint) ([]*models.Reply, error)
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new reply repository.
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Reply, error) {
	var replies []*models.Reply
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("published ASC").
		Find(&replies).Error
	return replies, err
}
