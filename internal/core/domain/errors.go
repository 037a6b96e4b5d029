package domain

import "errors"

// Kind classifies a domain error for transport mapping.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

// Error is a domain error carrying a user-facing message. Sentinels are
// compared by identity with errors.Is; the kind drives the HTTP status.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrInvalidRole        = newError(KindInvalidInput, "Invalid role selected")
	ErrInvalidCredentials = newError(KindInvalidInput, "Invalid credentials")
	ErrInvalidRating      = newError(KindInvalidInput, "Rating must be between 1 and 5")
	ErrInvalidInput       = newError(KindInvalidInput, "invalid input")

	ErrEmailTaken       = newError(KindConflict, "Email already registered")
	ErrStoreNameTaken   = newError(KindConflict, "Store name already registered")
	ErrDuplicateAccount = newError(KindConflict, "Account already exists")
	ErrDuplicateRating  = newError(KindConflict, "Rating already exists")

	ErrUserNotFound       = newError(KindNotFound, "User not found")
	ErrAdminNotFound      = newError(KindNotFound, "Admin not found")
	ErrStoreOwnerNotFound = newError(KindNotFound, "Store owner not found")
	ErrStoreNotFound      = newError(KindNotFound, "Store not found")

	ErrUnauthorized = newError(KindUnauthorized, "authentication required")
	ErrForbidden    = newError(KindForbidden, "access forbidden")
)

// KindOf returns the kind of the first domain error in err's chain, or 0.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
