package entity

import (
	"time"

	"github.com/google/uuid"
)

const VideoStatusNormal = "normal"

// The entity of a video record owned by a user.
type Video struct {
	Id          string    `json:"id" dynamodbav:"Id"`
	Title       string    `json:"title" dynamodbav:"Title"`
	Description string    `json:"description" dynamodbav:"Description"`
	Url         string    `json:"url" dynamodbav:"Url"`
	Status      string    `json:"status" dynamodbav:"Status"`
	Owner       *User     `json:"user" dynamodbav:"Owner"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"CreatedAt"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"UpdatedAt"`
}

// Create a new video bound to the given owner. The status defaults to normal.
func NewVideo(title, description, url string, owner *User) *Video {
	v := &Video{
		Id:          uuid.New().String(),
		Title:       title,
		Description: description,
		Url:         url,
		Owner:       owner,
		CreatedAt:   time.Now().UTC(),
	}
	v.SetStatus(VideoStatusNormal)
	return v
}

// Mark the status to the video.
func (v *Video) SetStatus(status string) {
	v.Status = status
	v.UpdatedAt = time.Now().UTC()
}

// Get the identifier of the owner, or an empty string when the video has no owner.
func (v *Video) OwnerId() string {
	if v.Owner == nil {
		return ""
	}
	return v.Owner.Id
}
