package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a failure independently of the transport.
type Kind string

const (
	KindInvalidArgument  Kind = "invalid_argument"
	KindPermissionDenied Kind = "permission_denied"
	KindUnauthenticated  Kind = "unauthenticated"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindUnavailable      Kind = "unavailable"
	KindInternal         Kind = "internal"
)

// BusinessError is comparable, so package-level values work as
// sentinels with errors.Is.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func InvalidArgument(code, message string) error {
	return BusinessError{Kind: KindInvalidArgument, Code: code, Message: message}
}

func PermissionDenied(code, message string) error {
	return BusinessError{Kind: KindPermissionDenied, Code: code, Message: message}
}

func Unauthenticated(code, message string) error {
	return BusinessError{Kind: KindUnauthenticated, Code: code, Message: message}
}

func NotFoundErr(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func Unavailable(code, message string) error {
	return BusinessError{Kind: KindUnavailable, Code: code, Message: message}
}

// KindOf reports the kind carried by err; anything unclassified is internal.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	if IsUniqueViolation(err) {
		return KindConflict
	}
	return KindInternal
}

// IsUniqueViolation detects postgres error 23505 raised through pgx.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
