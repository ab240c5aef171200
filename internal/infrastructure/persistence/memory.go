package persistence

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
)

// MemoryVideoRepository keeps videos in process memory, in insertion order.
type MemoryVideoRepository struct {
	mu     sync.RWMutex
	videos []*entity.Video
}

func NewMemoryVideoRepository() *MemoryVideoRepository {
	return &MemoryVideoRepository{}
}

func (r *MemoryVideoRepository) FindAll(ctx context.Context) ([]*entity.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Video, len(r.videos))
	for i, v := range r.videos {
		c := *v
		out[i] = &c
	}
	return out, nil
}

func (r *MemoryVideoRepository) Save(ctx context.Context, video *entity.Video) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if video.OwnerId() == "" {
		return fmt.Errorf("video %s has no owner", video.Id)
	}
	c := *video
	r.mu.Lock()
	r.videos = append(r.videos, &c)
	r.mu.Unlock()
	return nil
}

// MemoryUserRepository keeps users in process memory keyed by id.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewMemoryUserRepository(users ...*entity.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]*entity.User)}
	for _, u := range users {
		c := *u
		r.users[u.Id] = &c
	}
	return r
}

func (r *MemoryUserRepository) FindOneBy(ctx context.Context, criteria repository.UserCriteria) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if criteria.IsEmpty() {
		return nil, repository.ErrUnsupportedCriteria
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if criteria.Id != "" {
		u, ok := r.users[criteria.Id]
		if !ok {
			return nil, repository.ErrUserNotFound
		}
		c := *u
		return &c, nil
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, criteria.Email) {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user.Id == "" {
		return fmt.Errorf("user id is required")
	}
	c := *user
	r.mu.Lock()
	r.users[user.Id] = &c
	r.mu.Unlock()
	return nil
}

var (
	_ repository.VideoRepository = (*MemoryVideoRepository)(nil)
	_ repository.UserRepository  = (*MemoryUserRepository)(nil)
)
