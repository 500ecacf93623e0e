package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenNotFound      = errors.New("token not found or expired")
)
