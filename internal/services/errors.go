package services

import "errors"

// Kind classifies errors for the transport layer. The set is closed:
// every error that is not a *Error is KindInternal.
// NumKinds is the number of kinds.
type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound

	NumKinds
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

type Error struct {
	kind Kind
	msg  string
}

func newError(kind Kind, msg string) *Error {
	if kind >= NumKinds {
		kind = KindInternal
	}
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

var (
	ErrUserNotFound    = newError(KindNotFound, "user not found")
	ErrTeamNotFound    = newError(KindNotFound, "team not found")
	ErrProjectNotFound = newError(KindNotFound, "project not found")
	ErrTaskNotFound    = newError(KindNotFound, "task not found")
	ErrSessionNotFound = newError(KindNotFound, "session not found")

	ErrUserAlreadyExists    = newError(KindInternal, "user already exists")
	ErrUserPasswordMismatch = newError(KindInternal, "user password mismatch")
	ErrUserInactive         = newError(KindInternal, "user is inactive")
	ErrSessionExpired       = newError(KindInternal, "session expired")
	ErrInvalidStatus        = newError(KindInternal, "invalid status")
)
