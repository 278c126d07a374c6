package repository

import "errors"

// ErrNotFound is returned by lookups that match no entity.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicate is returned when a unique key is already taken.
var ErrDuplicate = errors.New("repository: duplicate key")
