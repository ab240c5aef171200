package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/molpadia/molpaclip/internal/auth"
	"github.com/molpadia/molpaclip/internal/domain/entity"
	"github.com/molpadia/molpaclip/internal/domain/repository"
	"github.com/molpadia/molpaclip/internal/envelope"
	"github.com/molpadia/molpaclip/internal/logger"
	"github.com/molpadia/molpaclip/internal/validation"
)

const (
	msgSaveFailed  = "Error. The video could not be saved. Try again."
	msgFetchFailed = "Error. Videos could not be fetched. Try again."
)

// VideoService runs the authenticated create and list pipelines. Every call returns
// a complete envelope; no error or panic escapes it.
type VideoService struct {
	auth           Authenticator
	videos         repository.VideoRepository
	users          IdentityResolver
	logger         logger.Logger
	verifyTimeout  time.Duration
	storageTimeout time.Duration
}

func NewVideoService(a Authenticator, videos repository.VideoRepository, users IdentityResolver, l logger.Logger, verifyTimeout, storageTimeout time.Duration) *VideoService {
	return &VideoService{
		auth:           a,
		videos:         videos,
		users:          users,
		logger:         l,
		verifyTimeout:  verifyTimeout,
		storageTimeout: storageTimeout,
	}
}

// Create authenticates the caller, decodes and validates the payload, binds a new
// video to the caller's stored user and persists it. Calls are not idempotent.
func (s *VideoService) Create(ctx context.Context, rawToken string, body io.Reader) (env envelope.Envelope) {
	defer s.recoverFault("create", msgSaveFailed, &env)

	if auth.ExtractToken(rawToken) == "" {
		return s.fail("create", errMissingAuthToken())
	}

	verifyCtx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	identity, err := s.auth.Resolve(verifyCtx, rawToken)
	cancel()
	if err != nil {
		return s.fail("create", classifyAuthError(msgCreateFailed, err))
	}

	payload, err := decodePayload(body)
	if err != nil {
		return s.fail("create", errDecodeFailure(err))
	}
	if fe := validation.CheckRequired(payload); fe != nil {
		return s.fail("create", errEmptyField(fe))
	}
	payload = payload.Trimmed()
	if fe := validation.ValidateFields(payload); fe != nil {
		return s.fail("create", errInvalidField(fe))
	}

	storageCtx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	owner, err := s.users.ResolveFromId(storageCtx, identity.Id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return s.fail("create", errIdentityNotFound(err))
		}
		return s.fail("create", classifyStorageError(msgSaveFailed, err))
	}

	video := entity.NewVideo(payload.Title, payload.Description, payload.Url, owner)
	if err := s.videos.Save(storageCtx, video); err != nil {
		return s.fail("create", classifyStorageError(msgSaveFailed, err))
	}

	s.logger.Info("video created", "video_id", video.Id, "user_id", owner.Id)
	return envelope.Success(http.StatusOK, msgVideoCreated, envelope.WithVideo(video))
}

// List authenticates the caller with the cheap token check and returns every video.
// An empty collection is reported as a client error, not as an empty list.
func (s *VideoService) List(ctx context.Context, rawToken string) (env envelope.Envelope) {
	defer s.recoverFault("list", msgFetchFailed, &env)

	if auth.ExtractToken(rawToken) == "" {
		return s.fail("list", errMissingAuthToken())
	}

	verifyCtx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	valid := s.auth.IsValid(verifyCtx, rawToken)
	verifyErr := verifyCtx.Err()
	cancel()
	if !valid {
		if errors.Is(verifyErr, context.DeadlineExceeded) {
			return s.fail("list", errTimeout(verifyErr))
		}
		return s.fail("list", errInvalidToken(msgListFailed, auth.ErrInvalidToken.Detail, auth.ErrInvalidToken))
	}

	storageCtx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	videos, err := s.videos.FindAll(storageCtx)
	if err != nil {
		return s.fail("list", classifyStorageError(msgFetchFailed, err))
	}
	if len(videos) == 0 {
		return s.fail("list", errEmptyResultSet())
	}
	return envelope.Success(http.StatusOK, msgVideoList, envelope.WithVideos(videos))
}

func (s *VideoService) fail(op string, e *AppError) envelope.Envelope {
	if errors.Is(e, ErrPersistenceFailure) || errors.Is(e, ErrTimeout) {
		s.logger.Error("video "+op+" failed", "kind", e.Kind, "error", e.Err)
	} else {
		s.logger.Debug("video "+op+" rejected", "kind", e.Kind, "message", e.Message, "field", e.Field)
	}
	return e.Envelope()
}

func (s *VideoService) recoverFault(op, message string, env *envelope.Envelope) {
	if r := recover(); r != nil {
		*env = s.fail(op, errPersistence(message, fmt.Errorf("panic: %v", r)))
	}
}

func classifyAuthError(message string, err error) *AppError {
	var authErr *auth.AuthError
	switch {
	case errors.As(err, &authErr):
		if authErr.Kind == auth.MissingToken {
			return errMissingAuthToken()
		}
		return errInvalidToken(message, authErr.Detail, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errTimeout(err)
	default:
		return errInvalidToken(message, auth.ErrInvalidToken.Detail, err)
	}
}

func classifyStorageError(message string, err error) *AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return errTimeout(err)
	}
	return errPersistence(message, err)
}

func decodePayload(body io.Reader) (validation.Payload, error) {
	var p validation.Payload
	if body == nil {
		return p, errors.New("request body is required")
	}
	dec := json.NewDecoder(body)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return p, errors.New("request body is empty")
		}
		return p, fmt.Errorf("cannot parse JSON from request body: %w", err)
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validation.Payload{}, errors.New("request body must contain a single JSON object")
	}
	return p, nil
}

var _ VideoUseCases = (*VideoService)(nil)
