package main

import (
	"context"
	"fmt"

	"github.com/molpadia/molpaclip/internal/cache"
	"github.com/molpadia/molpaclip/internal/config"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
	"github.com/molpadia/molpaclip/internal/infrastructure/persistence"
	"github.com/molpadia/molpaclip/internal/logger"
)

type storage struct {
	videos  repository.VideoRepository
	users   repository.UserRepository
	cache   cache.Cache
	closers []func()
}

func (s *storage) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStorage builds the repositories of the configured backend and, when a Redis
// address is set, the identity cache.
func openStorage(ctx context.Context, cfg *config.Config, l logger.Logger) (*storage, error) {
	s := &storage{}
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		users := persistence.NewMemoryUserRepository()
		for _, u := range cfg.Storage.Users {
			if err := users.Save(ctx, &entity.User{Id: u.Id, Name: u.Name, Surname: u.Surname, Email: u.Email, Role: u.Role}); err != nil {
				return nil, fmt.Errorf("seed user %q: %w", u.Id, err)
			}
		}
		s.users = users
		s.videos = persistence.NewMemoryVideoRepository()
	case config.BackendDynamoDB:
		sess, err := persistence.NewAWSSession(cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("create aws session: %w", err)
		}
		s.videos = persistence.NewDynamoVideoRepository(sess, cfg.DynamoDB.VideoTable)
		s.users = persistence.NewDynamoUserRepository(sess, cfg.DynamoDB.UserTable)
	case config.BackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pg.Close)
		s.videos = persistence.NewPostgresVideoRepository(pg)
		s.users = persistence.NewPostgresUserRepository(pg)
	case config.BackendSQLite:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { db.Close() })
		s.videos = persistence.NewSQLiteVideoRepository(db)
		s.users = persistence.NewSQLiteUserRepository(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if cfg.Redis.Addr != "" {
		c, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		s.cache = c
		s.closers = append(s.closers, func() { c.Close() })
		l.Info("identity cache enabled", "addr", cfg.Redis.Addr)
	}
	return s, nil
}
