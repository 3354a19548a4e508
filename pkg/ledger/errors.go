package ledger

import (
	"errors"
	"fmt"

	"github.com/envelope-zero/ledger/pkg/models"
)

var (
	// ErrNotFound is returned when a referenced account, category, payee,
	// transaction or allocation does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrStore is returned when the underlying persistence fails.
	ErrStore = errors.New("store error")

	// ErrValidation is returned for input that cannot be processed.
	ErrValidation = errors.New("validation error")
)

// wrap classifies an error from the database into one of the ledger errors.
// Errors that already are ledger errors are returned unchanged.
func wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrStore), errors.Is(err, ErrValidation):
		return err
	case errors.Is(err, models.ErrResourceNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
