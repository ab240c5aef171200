package persistence

import "time"

const defaultRole = "ROLE_USER"

func roleOrDefault(role string) string {
	if role == "" {
		return defaultRole
	}
	return role
}

func nowUTC() time.Time { return time.Now().UTC() }
