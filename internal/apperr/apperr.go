// Package apperr defines the application's error taxonomy.
// Every domain error carries a Kind that maps to exactly one HTTP
// status; handlers translate errors through this table instead of
// inspecting concrete types.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindRateLimited
	KindInternal
)

var statusByKind = map[Kind]int{
	KindBadRequest:      fiber.StatusBadRequest,
	KindUnauthenticated: fiber.StatusUnauthorized,
	KindForbidden:       fiber.StatusForbidden,
	KindNotFound:        fiber.StatusNotFound,
	KindRateLimited:     fiber.StatusTooManyRequests,
	KindInternal:        fiber.StatusInternalServerError,
}

type DomainError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// StatusOf resolves the HTTP status for an error. Anything that is not
// a DomainError is treated as an internal failure.
func StatusOf(err error) int {
	var de *DomainError
	if errors.As(err, &de) {
		if status, ok := statusByKind[de.Kind]; ok {
			return status
		}
	}
	return fiber.StatusInternalServerError
}

// MessageOf returns the client-facing message for an error. Internal
// failures get a generic message so details stay in the logs.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "something went wrong, please try again later"
}
