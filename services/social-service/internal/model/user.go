package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered member of the network.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName     string        `bson:"fullName"      json:"fullName"`
	Email        string        `bson:"email"         json:"email"`
	PasswordHash string        `bson:"password"      json:"-"`
	Avatar       string        `bson:"avatar"        json:"avatar"`
	Date         time.Time     `bson:"date"          json:"date"`
}

// UserSummary is the public part of a User embedded into other documents' responses.
type UserSummary struct {
	ID       bson.ObjectID `json:"_id"`
	FullName string        `json:"fullName"`
	Avatar   string        `json:"avatar"`
}

// Summary returns the public part of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, FullName: u.FullName, Avatar: u.Avatar}
}
