package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
)

var ErrOwnerNotFound = errors.New("owner does not exist")

type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database file and creates the tables if they do not exist.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", path))
	if err != nil {
		return nil, err
	}
	// A single writer avoids "database is locked" under concurrent requests.
	db.SetMaxOpenConns(1)

	schema := `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	surname TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL DEFAULT 'ROLE_USER',
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS videos (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	url TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'normal',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type SQLiteVideoRepository struct {
	s *SQLite
}

func NewSQLiteVideoRepository(s *SQLite) *SQLiteVideoRepository {
	return &SQLiteVideoRepository{s: s}
}

// Get all videos in insertion order.
func (r *SQLiteVideoRepository) FindAll(ctx context.Context) ([]*entity.Video, error) {
	rows, err := r.s.db.QueryContext(ctx, `
SELECT v.id, v.title, v.description, v.url, v.status, v.created_at, v.updated_at,
	u.id, u.name, u.surname, u.email, u.role, u.created_at
FROM videos v
JOIN users u ON u.id = v.user_id
ORDER BY v.rowid`)
	if err != nil {
		return nil, err
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

func (r *SQLiteVideoRepository) Save(ctx context.Context, video *entity.Video) error {
	if video.OwnerId() == "" {
		return fmt.Errorf("video %s has no owner", video.Id)
	}
	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO videos (id, user_id, title, description, url, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		video.Id, video.OwnerId(), video.Title, video.Description, video.Url, video.Status, video.CreatedAt, video.UpdatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return ErrOwnerNotFound
		}
		return fmt.Errorf("sqlite insert failed: %w", err)
	}
	return nil
}

type SQLiteUserRepository struct {
	s *SQLite
}

func NewSQLiteUserRepository(s *SQLite) *SQLiteUserRepository {
	return &SQLiteUserRepository{s: s}
}

func (r *SQLiteUserRepository) FindOneBy(ctx context.Context, criteria repository.UserCriteria) (*entity.User, error) {
	var row *sql.Row
	switch {
	case criteria.Id != "":
		row = r.s.db.QueryRowContext(ctx, `SELECT id, name, surname, email, role, created_at FROM users WHERE id = ?`, criteria.Id)
	case criteria.Email != "":
		row = r.s.db.QueryRowContext(ctx, `SELECT id, name, surname, email, role, created_at FROM users WHERE email = ? COLLATE NOCASE`, criteria.Email)
	default:
		return nil, repository.ErrUnsupportedCriteria
	}
	var u entity.User
	if err := row.Scan(&u.Id, &u.Name, &u.Surname, &u.Email, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *SQLiteUserRepository) Save(ctx context.Context, user *entity.User) error {
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = nowUTC()
	}
	_, err := r.s.db.ExecContext(ctx, `
INSERT INTO users (id, name, surname, email, role, created_at) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, surname = excluded.surname,
	email = excluded.email, role = excluded.role`,
		user.Id, user.Name, user.Surname, user.Email, roleOrDefault(user.Role), createdAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite upsert failed: %w", err)
	}
	return nil
}

var (
	_ repository.VideoRepository = (*SQLiteVideoRepository)(nil)
	_ repository.UserRepository  = (*SQLiteUserRepository)(nil)
)
