package entity

import (
	"testing"
	"time"
)

func TestNewVideo(t *testing.T) {
	owner := &User{Id: "u-1"}
	v := NewVideo("My Clip", "A short clip", "https://example.com/v/1", owner)

	if v.Id == "" {
		t.Error("expected a generated id")
	}
	if v.Status != VideoStatusNormal {
		t.Errorf("expected status %q, got %q", VideoStatusNormal, v.Status)
	}
	if v.OwnerId() != "u-1" {
		t.Errorf("expected owner u-1, got %q", v.OwnerId())
	}
	if v.UpdatedAt.IsZero() || v.UpdatedAt.Before(v.CreatedAt) {
		t.Errorf("expected updatedAt at or after createdAt, got %v < %v", v.UpdatedAt, v.CreatedAt)
	}
	if other := NewVideo("My Clip", "A short clip", "https://example.com/v/1", owner); other.Id == v.Id {
		t.Error("expected distinct ids")
	}
}

func TestSetStatus(t *testing.T) {
	v := &Video{Id: "v-1"}
	before := time.Now().UTC()
	v.SetStatus(VideoStatusNormal)

	if v.Status != VideoStatusNormal {
		t.Errorf("expected status %q, got %q", VideoStatusNormal, v.Status)
	}
	if v.UpdatedAt.Before(before) {
		t.Errorf("expected updatedAt to move, got %v", v.UpdatedAt)
	}
}

func TestOwnerId(t *testing.T) {
	if id := (&Video{}).OwnerId(); id != "" {
		t.Errorf("expected empty owner id, got %q", id)
	}
}
