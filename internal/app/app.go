package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/molpadia/molpaclip/internal/envelope"
	"github.com/molpadia/molpaclip/internal/logger"
)

type appHandler struct {
	fn     func(http.ResponseWriter, *http.Request) error
	logger logger.Logger
}

func (h appHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic while serving request", "path", r.URL.Path, "panic", fmt.Sprint(rec))
			replyJSON(w, envelope.Failure(http.StatusInternalServerError, "Internal server error", ""), http.StatusInternalServerError)
		}
	}()
	if err := h.fn(w, r); err != nil {
		var e *AppError
		if errors.As(err, &e) {
			replyJSON(w, e.Envelope(), e.Code)
			return
		}
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		replyJSON(w, envelope.Failure(http.StatusInternalServerError, "Internal server error", ""), http.StatusInternalServerError)
	}
}

// Register API endpoints to the router.
func SetupRoutes(r *mux.Router, videos VideoUseCases, l logger.Logger) {
	c := &controller{videos: videos}
	handle := func(fn func(http.ResponseWriter, *http.Request) error) http.Handler {
		return appHandler{fn: fn, logger: l}
	}

	r.Use(requestLogger(l))
	r.Methods("GET").Path("/health").Handler(handle(health))
	r.Methods("GET").Path("/video/").Handler(handle(c.listVideos))
	r.Methods("GET").Path("/video").Handler(handle(c.listVideos))
	r.Methods("POST").Path("/video/create").Handler(handle(c.createVideo))

	r.NotFoundHandler = handle(func(w http.ResponseWriter, r *http.Request) error {
		return errRouteNotFound(r.URL.Path)
	})
	r.MethodNotAllowedHandler = handle(func(w http.ResponseWriter, r *http.Request) error {
		return errMethodNotAllowed(r.Method)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(l logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			l.Info("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}
