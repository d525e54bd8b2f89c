// Package models holds the domain types shared by repositories, services
// and the CLI.
package models

import "time"

// User is a registered account. Users are immutable after registration.
//
// Password holds the encoded credential produced by a cryptox.PasswordVerifier,
// never the raw password.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	FullName  string
	Phone     string
	CreatedAt time.Time
}
