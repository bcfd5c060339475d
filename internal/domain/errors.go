package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned on a uniqueness violation, e.g. two
	// concurrent lazy profile creations for the same user.
	ErrAlreadyExists = errors.New("already exists")
)
