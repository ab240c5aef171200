package auth

type ErrorKind int

const (
	MissingToken ErrorKind = iota + 1
	InvalidOrExpiredToken
)

func (k ErrorKind) String() string {
	switch k {
	case MissingToken:
		return "missing token"
	case InvalidOrExpiredToken:
		return "invalid or expired token"
	}
	return "unknown"
}

// AuthError is returned by Resolve when a token cannot be turned into an identity.
type AuthError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

var (
	ErrMissingToken = &AuthError{Kind: MissingToken, Detail: "authorization token is required"}
	ErrInvalidToken = &AuthError{Kind: InvalidOrExpiredToken, Detail: "authorization token is invalid or expired"}
)

func (e *AuthError) Error() string { return e.Detail }

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches any AuthError of the same kind, so errors.Is(err, ErrInvalidToken)
// holds for every invalid token regardless of detail.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

func invalid(detail string, err error) *AuthError {
	return &AuthError{Kind: InvalidOrExpiredToken, Detail: detail, Err: err}
}
