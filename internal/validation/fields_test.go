package validation

import (
	"strings"
	"testing"
)

func TestValidateFields(t *testing.T) {
	valid := Payload{Title: "My Clip", Description: "A short clip", Url: "https://example.com/v/1"}

	tests := []struct {
		name        string
		payload     Payload
		field       string
		missing     bool
		expectValid bool
	}{
		{"valid", valid, "", false, true},
		{"valid after trim", Payload{Title: "  My Clip ", Description: "\tA short clip\n", Url: " https://example.com/v/1 "}, "", false, true},
		{"title too short", Payload{Title: "A", Description: "d", Url: valid.Url}, FieldTitle, false, false},
		{"title short after trim", Payload{Title: "  A  ", Description: "d", Url: valid.Url}, FieldTitle, false, false},
		{"title at lower bound", Payload{Title: "Ab", Description: "d", Url: valid.Url}, "", false, true},
		{"title at upper bound", Payload{Title: strings.Repeat("x", 100), Description: "d", Url: valid.Url}, "", false, true},
		{"title too long", Payload{Title: strings.Repeat("x", 101), Description: "d", Url: valid.Url}, FieldTitle, false, false},
		{"title counts runes", Payload{Title: strings.Repeat("é", 100), Description: "d", Url: valid.Url}, "", false, true},
		{"url without scheme", Payload{Title: "My Clip", Description: "d", Url: "not-a-url"}, FieldUrl, false, false},
		{"url without host", Payload{Title: "My Clip", Description: "d", Url: "https://"}, FieldUrl, false, false},
		{"url ftp", Payload{Title: "My Clip", Description: "d", Url: "ftp://example.com/clip"}, FieldUrl, false, false},
		{"url relative", Payload{Title: "My Clip", Description: "d", Url: "/v/1"}, FieldUrl, false, false},
		{"missing title", Payload{Description: "d", Url: valid.Url}, FieldTitle, true, false},
		{"blank description", Payload{Title: "My Clip", Description: "   ", Url: valid.Url}, FieldDescription, true, false},
		{"missing url", Payload{Title: "My Clip", Description: "d"}, FieldUrl, true, false},
		{"long description", Payload{Title: "My Clip", Description: strings.Repeat("d", 10000), Url: valid.Url}, "", false, true},
	}
	for _, tt := range tests {
		err := ValidateFields(tt.payload)
		if tt.expectValid {
			if err != nil {
				t.Errorf("%s: expected valid, got %v", tt.name, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("%s: expected an error on %s", tt.name, tt.field)
			continue
		}
		if err.Field != tt.field || err.Missing != tt.missing {
			t.Errorf("%s: expected field %s missing=%v, got %s missing=%v", tt.name, tt.field, tt.missing, err.Field, err.Missing)
		}
	}
}

func TestCheckRequiredStopsAtFirstBlankField(t *testing.T) {
	err := CheckRequired(Payload{})
	if err == nil || err.Field != FieldTitle || !err.Missing {
		t.Fatalf("expected missing title, got %v", err)
	}
	if err := CheckRequired(Payload{Title: "x", Description: "y", Url: "z"}); err != nil {
		t.Errorf("expected no error for non-blank fields, got %v", err)
	}
}
