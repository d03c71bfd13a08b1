package repositories

import "errors"

// Storage error sentinels. The postgres implementations translate driver
// errors into these; callers match with errors.Is.
var (
	// ErrNotFound indicates the targeted row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateName indicates a case-insensitive unique name violation.
	ErrDuplicateName = errors.New("name already exists")

	// ErrInvalidReference indicates a foreign key violation, either a
	// missing referenced row or an existing dependent row.
	ErrInvalidReference = errors.New("invalid record reference")
)
