package usecase

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrPersistence           = errors.New("persistence failure")
	ErrAlreadyExists         = errors.New("resource already exists")
	// ErrOrchestration marks failures of multi-step transactional operations.
	// The original cause stays reachable through errors.Is / errors.As.
	ErrOrchestration = errors.New("orchestration failure")
)

func wrapOrchestration(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(crerr.Wrapf(err, format, args...), ErrOrchestration)
}

// IsOrchestrationFailure reports whether err came out of a transactional
// service operation.
func IsOrchestrationFailure(err error) bool {
	return crerr.Is(err, ErrOrchestration)
}
