package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
)

type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a connection pool and applies any missing migrations.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	p := &Postgres{pool: pool}
	if err := p.migrate(ctx, pgMigration); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) migrate(ctx context.Context, wanted []string) error {
	if _, err := p.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`); err != nil {
		return err
	}

	rows, err := p.pool.Query(ctx, `SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}
	existing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return err
	}

	missing, err := pendingMigrations(wanted, existing)
	if err != nil {
		return err
	}

	for _, query := range missing {
		err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, query); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO migration (query) VALUES ($1)`, query)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

type PostgresVideoRepository struct {
	p *Postgres
}

func NewPostgresVideoRepository(p *Postgres) *PostgresVideoRepository {
	return &PostgresVideoRepository{p: p}
}

func (r *PostgresVideoRepository) FindAll(ctx context.Context) ([]*entity.Video, error) {
	rows, err := r.p.pool.Query(ctx, `
SELECT v.id, v.title, v.description, v.url, v.status, v.created_at, v.updated_at,
	u.id, u.name, u.surname, u.email, u.role, u.created_at
FROM videos v
JOIN users u ON u.id = v.user_id
ORDER BY v.created_at, v.id`)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	videos := []*entity.Video{}
	for rows.Next() {
		v := &entity.Video{Owner: &entity.User{}}
		if err := rows.Scan(
			&v.Id, &v.Title, &v.Description, &v.Url, &v.Status, &v.CreatedAt, &v.UpdatedAt,
			&v.Owner.Id, &v.Owner.Name, &v.Owner.Surname, &v.Owner.Email, &v.Owner.Role, &v.Owner.CreatedAt,
		); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *PostgresVideoRepository) Save(ctx context.Context, video *entity.Video) error {
	if video.OwnerId() == "" {
		return fmt.Errorf("video %s has no owner", video.Id)
	}
	_, err := r.p.pool.Exec(ctx, `
INSERT INTO videos (id, user_id, title, description, url, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		video.Id, video.OwnerId(), video.Title, video.Description, video.Url, video.Status, video.CreatedAt, video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres insert failed: %w", err)
	}
	return nil
}

type PostgresUserRepository struct {
	p *Postgres
}

func NewPostgresUserRepository(p *Postgres) *PostgresUserRepository {
	return &PostgresUserRepository{p: p}
}

func (r *PostgresUserRepository) FindOneBy(ctx context.Context, criteria repository.UserCriteria) (*entity.User, error) {
	var row pgx.Row
	switch {
	case criteria.Id != "":
		row = r.p.pool.QueryRow(ctx, `SELECT id, name, surname, email, role, created_at FROM users WHERE id = $1`, criteria.Id)
	case criteria.Email != "":
		row = r.p.pool.QueryRow(ctx, `SELECT id, name, surname, email, role, created_at FROM users WHERE lower(email) = lower($1)`, criteria.Email)
	default:
		return nil, repository.ErrUnsupportedCriteria
	}
	var u entity.User
	if err := row.Scan(&u.Id, &u.Name, &u.Surname, &u.Email, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) Save(ctx context.Context, user *entity.User) error {
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = nowUTC()
	}
	_, err := r.p.pool.Exec(ctx, `
INSERT INTO users (id, name, surname, email, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, surname = EXCLUDED.surname,
	email = EXCLUDED.email, role = EXCLUDED.role`,
		user.Id, user.Name, user.Surname, user.Email, roleOrDefault(user.Role), createdAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("email %s already taken: %w", user.Email, err)
	}
	return err
}

var (
	_ repository.VideoRepository = (*PostgresVideoRepository)(nil)
	_ repository.UserRepository  = (*PostgresUserRepository)(nil)
)
