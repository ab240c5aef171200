package persistence

import "fmt"

var pgMigration = []string{
	`CREATE TABLE users (
id VARCHAR(64) PRIMARY KEY,
name VARCHAR(255) NOT NULL DEFAULT '',
surname VARCHAR(255) NOT NULL DEFAULT '',
email VARCHAR(255) NOT NULL UNIQUE,
role VARCHAR(50) NOT NULL DEFAULT 'ROLE_USER',
created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE videos (
id VARCHAR(64) PRIMARY KEY,
user_id VARCHAR(64) NOT NULL REFERENCES users(id),
title VARCHAR(100) NOT NULL,
description TEXT NOT NULL,
url TEXT NOT NULL,
status VARCHAR(50) NOT NULL DEFAULT 'normal',
created_at TIMESTAMPTZ NOT NULL,
updated_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX videos_created_at_idx ON videos (created_at)`,
}

// pendingMigrations returns the part of wanted that has not been applied yet. The
// applied queries must match the head of wanted exactly.
func pendingMigrations(wanted, applied []string) ([]string, error) {
	if len(applied) > len(wanted) {
		return nil, fmt.Errorf("database has %d migrations applied, only %d are known", len(applied), len(wanted))
	}
	for i, query := range applied {
		if query != wanted[i] {
			return nil, fmt.Errorf("migration %d was changed after it was applied", i+1)
		}
	}
	return append([]string(nil), wanted[len(applied):]...), nil
}
