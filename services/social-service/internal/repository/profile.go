package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/model"
)

// ProfileRepository defines the interface for profile-related database operations.
type ProfileRepository interface {
	GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)
	UpsertProfile(ctx context.Context, userID string, params UpsertProfileParams) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]*model.Profile, error)
	SaveProfile(ctx context.Context, profile *model.Profile) error
	DeleteProfileByUserID(ctx context.Context, userID string) error
}

// UpsertProfileParams defines the optional parameters for creating or updating a profile.
// Only the fields that are not nil will be written.
type UpsertProfileParams struct {
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Skills         []string
	Bio            *string
	GithubUsername *string
	YouTube        *string
	Twitter        *string
	Facebook       *string
	LinkedIn       *string
	Instagram      *string
}

func (p UpsertProfileParams) setFields() bson.M {
	fields := bson.M{}
	set := func(key string, value *string) {
		if value != nil {
			fields[key] = *value
		}
	}

	set("company", p.Company)
	set("website", p.Website)
	set("location", p.Location)
	set("status", p.Status)
	set("bio", p.Bio)
	set("githubusername", p.GithubUsername)
	set("social.youtube", p.YouTube)
	set("social.twitter", p.Twitter)
	set("social.facebook", p.Facebook)
	set("social.linkedin", p.LinkedIn)
	set("social.instagram", p.Instagram)
	if p.Skills != nil {
		fields["skills"] = p.Skills
	}

	return fields
}

const profileCollection = "profiles"

type profileMongoRepository struct {
	db *mongo.Database
}

func NewProfileMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProfileRepository {
	collection := db.Collection(profileCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create profile indexes")
	}

	return &profileMongoRepository{db: db}
}

func (r *profileMongoRepository) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(profileCollection).FindOne(ctx, bson.M{"user": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileMongoRepository) UpsertProfile(
	ctx context.Context,
	userID string,
	params UpsertProfileParams,
) (*model.Profile, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$setOnInsert": bson.M{
			"date":       time.Now(),
			"experience": bson.A{},
			"education":  bson.A{},
		},
	}
	if fields := params.setFields(); len(fields) > 0 {
		update["$set"] = fields
	}

	result := r.db.Collection(profileCollection).FindOneAndUpdate(
		ctx,
		bson.M{"user": objectID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileMongoRepository) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	cursor, err := r.db.Collection(profileCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := []*model.Profile{}
	for cursor.Next(ctx) {
		var profile model.Profile
		if err := cursor.Decode(&profile); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// SaveProfile replaces the stored profile with the given one. Last write wins.
func (r *profileMongoRepository) SaveProfile(ctx context.Context, profile *model.Profile) error {
	result, err := r.db.Collection(profileCollection).ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *profileMongoRepository) DeleteProfileByUserID(ctx context.Context, userID string) error {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(profileCollection).DeleteOne(ctx, bson.M{"user": objectID})
	return err
}
