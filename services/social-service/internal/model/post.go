package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post is a status update. Name and Avatar are copied from the author when the post is created.
type Post struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	User     bson.ObjectID `bson:"user"          json:"user"`
	Text     string        `bson:"text"          json:"text"`
	Name     string        `bson:"name"          json:"name"`
	Avatar   string        `bson:"avatar"        json:"avatar"`
	Likes    []Like        `bson:"likes"         json:"likes"`
	Comments []Comment     `bson:"comments"      json:"comments"`
	Date     time.Time     `bson:"date"          json:"date"`
}

// Like references the user who liked a post.
type Like struct {
	ID   bson.ObjectID `bson:"_id"  json:"_id"`
	User bson.ObjectID `bson:"user" json:"user"`
}

// Comment is a reply to a post, with the author's name and avatar copied at write time.
type Comment struct {
	ID     bson.ObjectID `bson:"_id"    json:"_id"`
	User   bson.ObjectID `bson:"user"   json:"user"`
	Text   string        `bson:"text"   json:"text"`
	Name   string        `bson:"name"   json:"name"`
	Avatar string        `bson:"avatar" json:"avatar"`
	Date   time.Time     `bson:"date"   json:"date"`
}
