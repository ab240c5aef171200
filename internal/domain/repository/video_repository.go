package repository

import (
	"context"

	"github.com/molpadia/molpaclip/internal/domain/entity"
)

type VideoRepository interface {
	// Get all videos in creation order.
	FindAll(ctx context.Context) ([]*entity.Video, error)
	// Save an entity to the persistence.
	Save(ctx context.Context, video *entity.Video) error
}
