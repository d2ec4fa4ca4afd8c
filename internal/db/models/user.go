package models

import (
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User is an administrator account. Only active users can log in.
type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Active    bool
	Username  string `gorm:"unique;size:100;not null"`
	Email     string `gorm:"size:255;not null"`
	Password  string `gorm:"size:255" json:"-"` // argon2id hash
	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName is the full name, or the username when no name is set.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}

	return name
}

// HashPassword returns the argon2id hash of password with the default parameters.
func HashPassword(password string) string {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		// only fails when crypto/rand is broken
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	return hash
}

// VerifyPassword compares password with the stored hash in constant time.
// A malformed hash never matches.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Uint64("user", u.ID).Msg("failed to verify password")
		return false
	}

	return match
}
