// Command tokengen signs a bearer token for a stored user, and optionally creates
// the user first.
//
//	tokengen -user u-1
//	tokengen -user u-1 -email ada@example.com -name Ada -create
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/molpadia/molpaclip/internal/auth"
	"github.com/molpadia/molpaclip/internal/config"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
	"github.com/molpadia/molpaclip/internal/infrastructure/persistence"
)

var (
	configPath = flag.String("config", "", "path of the YAML config file")
	userId     = flag.String("user", "", "id of the user the token is issued for")
	email      = flag.String("email", "", "email of the user (with -create)")
	name       = flag.String("name", "", "name of the user (with -create)")
	surname    = flag.String("surname", "", "surname of the user (with -create)")
	create     = flag.Bool("create", false, "create or update the user before issuing the token")
	ttl        = flag.Duration("ttl", 0, "token lifetime, defaults to auth.token_ttl")
)

func main() {
	flag.Parse()
	if *userId == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.Timeout)
	defer cancel()

	store, err := openUsers(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer store.close()

	if *create {
		u := &entity.User{Id: *userId, Email: *email, Name: *name, Surname: *surname, CreatedAt: time.Now().UTC()}
		if err := store.users.Save(ctx, u); err != nil {
			log.Fatalf("failed to save user: %v", err)
		}
	}

	user, err := store.users.FindOneBy(ctx, repository.UserCriteria{Id: *userId})
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Fatalf("user %s does not exist; pass -create to add it", *userId)
	}
	if err != nil {
		log.Fatalf("failed to look up user: %v", err)
	}

	lifetime := cfg.Auth.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}
	token, err := auth.NewJWTAuthenticator(cfg.Auth.Secret).Issue(user, lifetime)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}

type userStore struct {
	users repository.UserRepository
	close func()
}

func openUsers(ctx context.Context, cfg *config.Config) (*userStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		// Only the seeded users exist; -create does not outlive this process.
		var seeds []*entity.User
		for _, u := range cfg.Storage.Users {
			seeds = append(seeds, &entity.User{Id: u.Id, Name: u.Name, Surname: u.Surname, Email: u.Email, Role: u.Role})
		}
		return &userStore{users: persistence.NewMemoryUserRepository(seeds...), close: func() {}}, nil
	case config.BackendDynamoDB:
		sess, err := persistence.NewAWSSession(cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint)
		if err != nil {
			return nil, err
		}
		return &userStore{users: persistence.NewDynamoUserRepository(sess, cfg.DynamoDB.UserTable), close: func() {}}, nil
	case config.BackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		return &userStore{users: persistence.NewPostgresUserRepository(pg), close: pg.Close}, nil
	case config.BackendSQLite:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return &userStore{users: persistence.NewSQLiteUserRepository(db), close: func() { db.Close() }}, nil
	}
	return nil, fmt.Errorf("backend %q is not supported by tokengen", cfg.Storage.Backend)
}
