package models

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrContactNotFound    = errors.New("contact not found")
	ErrBrandNotFound      = errors.New("brand not found")
	ErrModelNotFound      = errors.New("model not found")
	ErrMissingRequired    = errors.New("brand, model, year and drive type are required")
)
