// Package repository defines sentinel error values reused across the
// repositories. Higher layers match on these to pick status codes without
// inspecting database errors. ErrTaskNotFound deliberately covers both "no
// such task" and "task owned by someone else": the two cases must stay
// indistinguishable to callers so task ids never leak across accounts.
package repository

import "errors"

// ErrEmailExists is returned when a signup collides with an already
// registered email (compared case-insensitively). Handlers translate it
// into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user id has no record. Handlers
// translate it into an HTTP 404 response.
var ErrUserNotFound = errors.New("user not found")

// ErrTaskNotFound is returned when a task id has no record visible to the
// requesting owner. Handlers translate it into an HTTP 404 response.
var ErrTaskNotFound = errors.New("task not found")
