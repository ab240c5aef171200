package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/molpadia/molpaclip/internal/cache"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
	"github.com/molpadia/molpaclip/internal/logger"
)

const userCachePrefix = "user:"

// cachedUser is the cache encoding of a user; entity.User hides some fields from JSON.
type cachedUser struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CachedUserResolver resolves stored users by id through an optional read-through cache.
// Cache failures are logged and fall back to the repository.
type CachedUserResolver struct {
	users  repository.UserRepository
	cache  cache.Cache
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedUserResolver builds a resolver; a nil cache disables caching.
func NewCachedUserResolver(users repository.UserRepository, c cache.Cache, ttl time.Duration, l logger.Logger) *CachedUserResolver {
	return &CachedUserResolver{users: users, cache: c, ttl: ttl, logger: l}
}

func (r *CachedUserResolver) ResolveFromId(ctx context.Context, id string) (*entity.User, error) {
	key := userCachePrefix + id
	if r.cache != nil {
		raw, err := r.cache.Get(ctx, key)
		switch {
		case err == nil:
			var cu cachedUser
			if err := json.Unmarshal([]byte(raw), &cu); err == nil {
				return &entity.User{
					Id: cu.Id, Name: cu.Name, Surname: cu.Surname,
					Email: cu.Email, Role: cu.Role, CreatedAt: cu.CreatedAt,
				}, nil
			}
			r.logger.Warn("dropping undecodable cached user", "key", key)
			_ = r.cache.Del(ctx, key)
		case !errors.Is(err, cache.ErrMiss):
			r.logger.Warn("user cache read failed", "key", key, "error", err)
		}
	}

	user, err := r.users.FindOneBy(ctx, repository.UserCriteria{Id: id})
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		raw, err := json.Marshal(cachedUser{
			Id: user.Id, Name: user.Name, Surname: user.Surname,
			Email: user.Email, Role: user.Role, CreatedAt: user.CreatedAt,
		})
		if err == nil {
			err = r.cache.Set(ctx, key, string(raw), r.ttl)
		}
		if err != nil {
			r.logger.Warn("user cache write failed", "key", key, "error", err)
		}
	}
	return user, nil
}
