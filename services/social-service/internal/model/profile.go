package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile is the one-to-one developer profile of a user, with embedded experience and education.
type Profile struct {
	ID             bson.ObjectID `bson:"_id,omitempty"  json:"_id"`
	User           bson.ObjectID `bson:"user"           json:"user"`
	Company        string        `bson:"company"        json:"company,omitempty"`
	Website        string        `bson:"website"        json:"website,omitempty"`
	Location       string        `bson:"location"       json:"location,omitempty"`
	Status         string        `bson:"status"         json:"status"`
	Skills         []string      `bson:"skills"         json:"skills"`
	Bio            string        `bson:"bio"            json:"bio,omitempty"`
	GithubUsername string        `bson:"githubusername" json:"githubusername,omitempty"`
	Experience     []Experience  `bson:"experience"     json:"experience"`
	Education      []Education   `bson:"education"      json:"education"`
	Social         Social        `bson:"social"         json:"social"`
	Date           time.Time     `bson:"date"           json:"date"`
}

// Experience is a job entry of a profile.
type Experience struct {
	ID          bson.ObjectID `bson:"_id"         json:"_id"`
	Title       string        `bson:"title"       json:"title"`
	Company     string        `bson:"company"     json:"company"`
	Location    string        `bson:"location"    json:"location,omitempty"`
	From        time.Time     `bson:"from"        json:"from"`
	To          *time.Time    `bson:"to"          json:"to,omitempty"`
	Current     bool          `bson:"current"     json:"current"`
	Description string        `bson:"description" json:"description,omitempty"`
}

// Education is a school entry of a profile.
type Education struct {
	ID           bson.ObjectID `bson:"_id"          json:"_id"`
	School       string        `bson:"school"       json:"school"`
	Degree       string        `bson:"degree"       json:"degree"`
	FieldOfStudy string        `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time     `bson:"from"         json:"from"`
	To           *time.Time    `bson:"to"           json:"to,omitempty"`
	Current      bool          `bson:"current"      json:"current"`
	Description  string        `bson:"description"  json:"description,omitempty"`
}

// Social holds the social network links of a profile.
type Social struct {
	YouTube   string `bson:"youtube"   json:"youtube,omitempty"`
	Twitter   string `bson:"twitter"   json:"twitter,omitempty"`
	Facebook  string `bson:"facebook"  json:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin"  json:"linkedin,omitempty"`
	Instagram string `bson:"instagram" json:"instagram,omitempty"`
}

// ProfileDetails is a profile with its owner populated.
// The outer User field shadows Profile.User in the JSON output.
type ProfileDetails struct {
	*Profile
	User *UserSummary `json:"user"`
}
