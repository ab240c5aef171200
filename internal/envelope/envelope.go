// Package envelope builds the uniform response body every endpoint returns:
//
//	{"status": "success"|"error", "code": <int>, "message": <string>, ...}
//
// A success carries the created resource under "video" or the collection under
// "videos"; an error may carry a detail under "error". Absent parts are omitted
// from the JSON rather than rendered as null.
package envelope

import (
	"net/http"

	"github.com/molpadia/molpaclip/internal/domain/entity"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is an immutable response value; build it with Success or Failure.
type Envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
	Video   *entity.Video   `json:"video,omitempty"`
	Videos  []*entity.Video `json:"videos,omitempty"`
}

type Option func(*Envelope)

// WithVideo attaches a single resource.
func WithVideo(v *entity.Video) Option {
	return func(e *Envelope) { e.Video = v }
}

// WithVideos attaches a collection. The slice is copied.
func WithVideos(vs []*entity.Video) Option {
	return func(e *Envelope) { e.Videos = append([]*entity.Video(nil), vs...) }
}

// Success builds a success envelope. Codes outside the 2xx range are coerced to 200
// so status and code never disagree.
func Success(code int, message string, opts ...Option) Envelope {
	if code < 200 || code > 299 {
		code = http.StatusOK
	}
	e := Envelope{Status: StatusSuccess, Code: code, Message: message}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Failure builds an error envelope. Codes below 400 are coerced to 500 and an
// empty message is replaced by the standard status text.
func Failure(code int, message, detail string) Envelope {
	if code < 400 || code > 599 {
		code = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(code)
	}
	return Envelope{Status: StatusError, Code: code, Message: message, Error: detail}
}

func (e Envelope) IsSuccess() bool { return e.Status == StatusSuccess }
