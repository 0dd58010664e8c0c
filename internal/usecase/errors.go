package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("not allowed for this account type")
	ErrProfileIncomplete  = errors.New("profile incomplete")
)
