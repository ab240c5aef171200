package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/molpadia/molpaclip/internal/cache"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
	"github.com/molpadia/molpaclip/internal/logger"
)

type mockCache struct {
	values map[string]string
	getErr error
	sets   int
}

func newMockCache() *mockCache { return &mockCache{values: map[string]string{}} }

func (c *mockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.sets++
	c.values[key] = value
	return nil
}

func (c *mockCache) Get(ctx context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (c *mockCache) Del(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *mockCache) Close() error { return nil }

type countingUsers struct {
	repository.UserRepository
	calls int
}

func (u *countingUsers) FindOneBy(ctx context.Context, criteria repository.UserCriteria) (*entity.User, error) {
	u.calls++
	return u.UserRepository.FindOneBy(ctx, criteria)
}

func TestCachedUserResolver(t *testing.T) {
	ctx := context.Background()
	users := &countingUsers{UserRepository: NewMemoryUserRepository(&entity.User{Id: "u-1", Name: "Ada", Role: "ROLE_ADMIN"})}
	c := newMockCache()
	r := NewCachedUserResolver(users, c, time.Minute, logger.NewNop())

	for i := 0; i < 3; i++ {
		u, err := r.ResolveFromId(ctx, "u-1")
		if err != nil {
			t.Fatal(err)
		}
		if u.Name != "Ada" || u.Role != "ROLE_ADMIN" {
			t.Errorf("unexpected user %+v", u)
		}
	}
	if users.calls != 1 || c.sets != 1 {
		t.Errorf("expected one lookup and one cache write, got %d lookups and %d writes", users.calls, c.sets)
	}

	if _, err := r.ResolveFromId(ctx, "u-2"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCachedUserResolverFallsBack(t *testing.T) {
	ctx := context.Background()
	users := &countingUsers{UserRepository: NewMemoryUserRepository(&entity.User{Id: "u-1"})}

	broken := newMockCache()
	broken.getErr = errors.New("connection refused")
	if _, err := NewCachedUserResolver(users, broken, time.Minute, logger.NewNop()).ResolveFromId(ctx, "u-1"); err != nil {
		t.Errorf("expected fallback on cache error, got %v", err)
	}

	corrupt := newMockCache()
	corrupt.values[userCachePrefix+"u-1"] = "{not json"
	if _, err := NewCachedUserResolver(users, corrupt, time.Minute, logger.NewNop()).ResolveFromId(ctx, "u-1"); err != nil {
		t.Errorf("expected fallback on corrupt entry, got %v", err)
	}

	if _, err := NewCachedUserResolver(users, nil, 0, logger.NewNop()).ResolveFromId(ctx, "u-1"); err != nil {
		t.Errorf("expected resolver without cache to work, got %v", err)
	}
	if users.calls != 3 {
		t.Errorf("expected 3 repository lookups, got %d", users.calls)
	}
}
