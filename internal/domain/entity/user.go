package entity

import "time"

// TokenAccessAuth is the access class recorded for every issued token.
const TokenAccessAuth = "auth"

// User is the aggregate root for the user domain. PasswordHash is a bcrypt
// hash and must never leave the process in a response body.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserToken is one entry in a user's token sequence. Tokens are appended on
// login/signup and removed by exact value on logout; they are never mutated
// in place.
type UserToken struct {
	UserID    string
	Access    string
	Token     string
	CreatedAt time.Time
}
