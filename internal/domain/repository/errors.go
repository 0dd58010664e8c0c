package repository

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrListingUnavailable = errors.New("listing is no longer available")
)
