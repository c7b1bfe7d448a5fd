package models

import (
	"time"
)

// User is owned by the user-service. BannedUntil is an epoch-millis
// timestamp; nil means the user is not banned. Other services only ever see
// the public projection (name + profile image) through the user client.
type User struct {
	ID               int64
	Name             string
	Email            string
	Phone            string
	PasswordHash     string
	ProfileImagePath *string
	IsAdmin          bool
	BannedUntil      *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Banned reports whether the user is banned at instant now (epoch millis).
func (u *User) Banned(nowMillis int64) bool {
	return u.BannedUntil != nil && *u.BannedUntil > nowMillis
}
