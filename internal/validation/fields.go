// Package validation holds the structural rules applied to a create video payload.
package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

const (
	TitleMinLength = 2
	TitleMaxLength = 100
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldUrl         = "url"
)

// Payload is the decoded body of a create video request.
type Payload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Url         string `json:"url"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (p Payload) Trimmed() Payload {
	return Payload{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Url:         strings.TrimSpace(p.Url),
	}
}

// FieldError names the first field that violated a rule.
type FieldError struct {
	Field  string
	Reason string
	// Missing is set when the field was absent or blank, before any rule ran.
	Missing bool
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field is not valid: %s", e.Field, e.Reason)
}

// CheckRequired reports the first field that is absent or blank after trimming.
func CheckRequired(p Payload) *FieldError {
	p = p.Trimmed()
	for _, f := range []struct{ name, value string }{
		{FieldTitle, p.Title},
		{FieldDescription, p.Description},
		{FieldUrl, p.Url},
	} {
		if f.value == "" {
			return &FieldError{Field: f.name, Reason: "must not be blank", Missing: true}
		}
	}
	return nil
}

// ValidateFields trims the payload and checks every rule, stopping at the first
// violation. A nil result means the payload is valid.
func ValidateFields(p Payload) *FieldError {
	if err := CheckRequired(p); err != nil {
		return err
	}
	p = p.Trimmed()
	if !govalidator.StringLength(p.Title, strconv.Itoa(TitleMinLength), strconv.Itoa(TitleMaxLength)) {
		return &FieldError{
			Field:  FieldTitle,
			Reason: fmt.Sprintf("length must be between %d and %d characters", TitleMinLength, TitleMaxLength),
		}
	}
	if !IsURL(p.Url) {
		return &FieldError{Field: FieldUrl, Reason: "must be an absolute http or https URL"}
	}
	return nil
}

// IsURL accepts absolute http(s) URLs with a host.
func IsURL(s string) bool {
	if !govalidator.IsRequestURL(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Hostname() != ""
}
