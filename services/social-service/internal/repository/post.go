package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/model"
)

// PostRepository defines the interface for post-related database operations.
type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) (*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	SavePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id string) error
}

const postCollection = "posts"

type postMongoRepository struct {
	db *mongo.Database
}

func NewPostMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) PostRepository {
	collection := db.Collection(postCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create post indexes")
	}

	return &postMongoRepository{db: db}
}

func (r *postMongoRepository) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	if post.Date.IsZero() {
		post.Date = time.Now()
	}
	if post.Likes == nil {
		post.Likes = []model.Like{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	result, err := r.db.Collection(postCollection).InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		post.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return post, nil
}

func (r *postMongoRepository) GetPost(ctx context.Context, id string) (*model.Post, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(postCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var post model.Post
	if err := result.Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postMongoRepository) ListPosts(ctx context.Context) ([]*model.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.db.Collection(postCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*model.Post{}
	for cursor.Next(ctx) {
		var post model.Post
		if err := cursor.Decode(&post); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// SavePost replaces the stored post with the given one. Last write wins.
func (r *postMongoRepository) SavePost(ctx context.Context, post *model.Post) error {
	result, err := r.db.Collection(postCollection).ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *postMongoRepository) DeletePost(ctx context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(postCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
