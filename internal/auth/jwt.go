package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/molpadia/molpaclip/internal/domain/entity"
)

const issuer = "molpaclip"

// claims is the token payload; the subject carries the user id.
type claims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	jwt.RegisteredClaims
}

// JWTAuthenticator verifies and issues HS256 bearer tokens.
type JWTAuthenticator struct {
	secret []byte
	now    func() time.Time
}

func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), now: time.Now}
}

// ExtractToken strips an optional "Bearer " scheme from an Authorization header value.
func ExtractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 6 && strings.EqualFold(header[:6], "bearer") && (len(header) == 6 || header[6] == ' ') {
		return strings.TrimSpace(header[6:])
	}
	return header
}

// IsValid reports whether the token carries a valid signature and has not expired.
// It never looks up any identity, and reports false once ctx is done.
func (a *JWTAuthenticator) IsValid(ctx context.Context, rawToken string) bool {
	if ctx.Err() != nil {
		return false
	}
	_, err := a.parse(rawToken)
	return err == nil
}

// Resolve verifies the token and decodes the caller identity from its claims.
// Failures are *AuthError, except for a done context which returns ctx.Err().
func (a *JWTAuthenticator) Resolve(ctx context.Context, rawToken string) (*entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := a.parse(rawToken)
	if err != nil {
		return nil, err
	}
	return &entity.Identity{
		Id:      c.Subject,
		Email:   c.Email,
		Name:    c.Name,
		Surname: c.Surname,
	}, nil
}

// Issue signs a token for the user valid for ttl.
func (a *JWTAuthenticator) Issue(user *entity.User, ttl time.Duration) (string, error) {
	now := a.now()
	c := &claims{
		Email:   user.Email,
		Name:    user.Name,
		Surname: user.Surname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
}

func (a *JWTAuthenticator) parse(rawToken string) (*claims, error) {
	rawToken = ExtractToken(rawToken)
	if rawToken == "" {
		return nil, ErrMissingToken
	}
	c := &claims{}
	_, err := jwt.ParseWithClaims(rawToken, c, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, invalid("authorization token has expired", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, invalid("authorization token is malformed", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, invalid("authorization token signature is invalid", err)
	default:
		return nil, invalid("authorization token is invalid", err)
	}
	if c.Subject == "" {
		return nil, invalid("authorization token has no subject", nil)
	}
	return c, nil
}
