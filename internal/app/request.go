package app

import (
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// MaxRequestSize caps the request body read by the create endpoint.
const MaxRequestSize = 1 << 20

// ValidateRequest reports whether the request carries its parameters in a form the
// API can read: a parseable query string and, for requests with a body, a JSON
// content type.
func ValidateRequest(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}
	if _, err := url.ParseQuery(r.URL.RawQuery); err != nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return false
		}
		return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
	}
	return true
}
