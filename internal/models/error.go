package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Account state errors
	ErrUserBanned        = errors.New("user is banned")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrEmailAlreadyTaken = errors.New("email is already registered")
)
