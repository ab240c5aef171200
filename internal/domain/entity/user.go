package entity

import "time"

// The stored user record a video is bound to.
type User struct {
	Id        string    `json:"id" dynamodbav:"Id"`
	Name      string    `json:"name" dynamodbav:"Name"`
	Surname   string    `json:"surname" dynamodbav:"Surname"`
	Email     string    `json:"email" dynamodbav:"Email"`
	Role      string    `json:"-" dynamodbav:"Role"`
	CreatedAt time.Time `json:"-" dynamodbav:"CreatedAt"`
}

// The caller reference decoded from a verified bearer token.
type Identity struct {
	Id      string
	Email   string
	Name    string
	Surname string
}
