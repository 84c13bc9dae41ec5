package errors

import (
	"errors"
	"net/http"
)

var (
	// Authentication failures are deliberately coarse so callers cannot
	// distinguish unknown users, wrong passwords or locked accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrMissingAuthHeader   = errors.New("authorization header required")
	ErrMalformedAuthHeader = errors.New("authorization header must be of the form: Bearer <token>")
	ErrTokenInvalid        = errors.New("token is invalid")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenWrongType      = errors.New("wrong token type")
	ErrTokenMissingSubject = errors.New("token has no subject")

	ErrUsernameTaken    = errors.New("username already in use")
	ErrEmailTaken       = errors.New("email already registered")
	ErrDuplicateAccount = errors.New("username or email already exists")

	ErrAccountNotFound    = errors.New("account not found")
	ErrFriendshipNotFound = errors.New("no friendship exists with this user")
	ErrFriendshipExists   = errors.New("friendship already exists")

	ErrSelfFriendRequest    = errors.New("cannot send a friend request to yourself")
	ErrOwnRequestDecision   = errors.New("cannot accept or reject your own friend request")
	ErrWrongFriendshipState = errors.New("friendship is not in a state that allows this action")

	ErrAvatarTooLarge    = errors.New("avatar file exceeds the maximum allowed size")
	ErrInvalidAvatarType = errors.New("only JPG, PNG, GIF and WEBP images are allowed")
)

// ValidationError carries the specific human-readable reason a piece of
// input was rejected (weak password, underage, malformed field, ...).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidation(reason string) error {
	return &ValidationError{Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusCode maps an error from the service layer to the HTTP status the
// handlers should respond with. Unknown errors map to 500 and their message
// must not leak to the caller.
func StatusCode(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrMissingAuthHeader),
		errors.Is(err, ErrMalformedAuthHeader),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenWrongType),
		errors.Is(err, ErrTokenMissingSubject):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrDuplicateAccount),
		errors.Is(err, ErrFriendshipExists):
		return http.StatusConflict
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrFriendshipNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSelfFriendRequest),
		errors.Is(err, ErrWrongFriendshipState):
		return http.StatusBadRequest
	case errors.Is(err, ErrOwnRequestDecision):
		return http.StatusForbidden
	case errors.Is(err, ErrAvatarTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidAvatarType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
