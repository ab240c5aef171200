package app

import (
	"context"
	"io"

	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/envelope"
)

// Authenticator verifies bearer tokens. IsValid is the cheap check; Resolve decodes
// the full identity and reports why a token was rejected. Both give up when ctx is done.
type Authenticator interface {
	IsValid(ctx context.Context, rawToken string) bool
	Resolve(ctx context.Context, rawToken string) (*entity.Identity, error)
}

// IdentityResolver maps a verified identity to its stored user record.
type IdentityResolver interface {
	ResolveFromId(ctx context.Context, id string) (*entity.User, error)
}

// VideoUseCases is what the HTTP layer needs from the video service.
type VideoUseCases interface {
	Create(ctx context.Context, rawToken string, body io.Reader) envelope.Envelope
	List(ctx context.Context, rawToken string) envelope.Envelope
}
