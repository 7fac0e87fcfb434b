package model

import "time"

// User represents an application user record as stored in the
// `users` table. Emails are normalized to lower case before they
// reach this struct so uniqueness checks behave case-insensitively.
// The password hash is never serialized; handlers build separate
// response types with the fields a client is allowed to see.
//
// Fields:
//  ID           – UUID primary key of the user.
//  Name         – display name supplied at signup.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hash of the password.
//  CreatedAt    – creation timestamp.
type User struct {
	ID           string    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
