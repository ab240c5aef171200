package app

import (
	"encoding/json"
	"net/http"
)

type controller struct {
	videos VideoUseCases
}

// List all videos.
func (c *controller) listVideos(w http.ResponseWriter, r *http.Request) error {
	if !ValidateRequest(r) {
		return errMalformedRequest()
	}
	env := c.videos.List(r.Context(), r.Header.Get("Authorization"))
	return replyJSON(w, env, env.Code)
}

// Create a new video.
func (c *controller) createVideo(w http.ResponseWriter, r *http.Request) error {
	if !ValidateRequest(r) {
		return errMalformedRequest()
	}
	body := http.MaxBytesReader(w, r.Body, MaxRequestSize)
	env := c.videos.Create(r.Context(), r.Header.Get("Authorization"), body)
	return replyJSON(w, env, env.Code)
}

func health(w http.ResponseWriter, r *http.Request) error {
	return replyJSON(w, map[string]string{"status": "up"}, http.StatusOK)
}

// Respond the output with JSON format to the client.
func replyJSON(w http.ResponseWriter, data interface{}, code int) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return err
	}
	return nil
}
