package service

import (
	"errors"

	"taxifleet/storage"
)

var (
	ErrNotFound           = storage.ErrNotFound
	ErrDuplicate          = storage.ErrDuplicate
	ErrInvalidCredentials = errors.New("invalid username or password")
)
