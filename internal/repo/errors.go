package repo

import (
	"errors"

	"github.com/birat04/Notionize/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("repo: not found")
	// ErrDuplicate is returned when a write would break a uniqueness constraint.
	ErrDuplicate = errors.New("repo: duplicate")
)

// mapPGError converts driver errors into the package sentinels.
func mapPGError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case utils.IsPGUniqueViolation(err):
		return ErrDuplicate
	}
	return err
}
