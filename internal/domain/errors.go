package domain

import "errors"

// Account and credential errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUnauthorized      = errors.New("unauthorized")
)

// Session and provider errors
var (
	ErrSessionNotFound   = errors.New("refresh session not found")
	ErrEmailClaimMissing = errors.New("provider profile is missing an email claim")
)
