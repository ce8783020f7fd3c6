package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/model"
)

func strPtr(s string) *string { return &s }

func TestUserMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserMemoryRepository()

	user, err := repo.CreateUser(ctx, &model.User{FullName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.False(t, user.Date.IsZero())

	_, err = repo.CreateUser(ctx, &model.User{FullName: "Ada 2", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	found, err := repo.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetUser(ctx, "not-an-id")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	users, err := repo.ListUsersByIDs(ctx, []bson.ObjectID{user.ID, bson.NewObjectID()})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, repo.DeleteUser(ctx, user.ID.Hex()))
	_, err = repo.GetUser(ctx, user.ID.Hex())
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	assert.ErrorIs(t, repo.DeleteUser(ctx, user.ID.Hex()), mongo.ErrNoDocuments)
}

func TestProfileMemoryRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileMemoryRepository()
	userID := bson.NewObjectID()

	created, err := repo.UpsertProfile(ctx, userID.Hex(), UpsertProfileParams{
		Status:  strPtr("Developer"),
		Skills:  []string{"go", "mongo"},
		Company: strPtr("Acme"),
		Twitter: strPtr("https://twitter.com/ada"),
	})
	require.NoError(t, err)
	assert.Equal(t, userID, created.User)
	assert.Equal(t, "Acme", created.Company)
	assert.NotNil(t, created.Experience)

	updated, err := repo.UpsertProfile(ctx, userID.Hex(), UpsertProfileParams{
		Status: strPtr("Senior Developer"),
		Skills: []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, "Acme", updated.Company, "absent field is unchanged")
	assert.Equal(t, "https://twitter.com/ada", updated.Social.Twitter)
	assert.Equal(t, []string{"go"}, updated.Skills)

	cleared, err := repo.UpsertProfile(ctx, userID.Hex(), UpsertProfileParams{Company: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, cleared.Company)
}

func TestProfileMemoryRepository_SaveIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileMemoryRepository()
	userID := bson.NewObjectID().Hex()

	_, err := repo.UpsertProfile(ctx, userID, UpsertProfileParams{Status: strPtr("Dev"), Skills: []string{"go"}})
	require.NoError(t, err)

	profile, err := repo.GetProfileByUserID(ctx, userID)
	require.NoError(t, err)
	profile.Experience = append(profile.Experience, model.Experience{ID: bson.NewObjectID(), Title: "Engineer"})

	stored, err := repo.GetProfileByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, stored.Experience)

	require.NoError(t, repo.SaveProfile(ctx, profile))
	stored, err = repo.GetProfileByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, stored.Experience, 1)

	require.NoError(t, repo.DeleteProfileByUserID(ctx, userID))
	_, err = repo.GetProfileByUserID(ctx, userID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestPostMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostMemoryRepository()
	author := bson.NewObjectID()
	now := time.Now()

	older, err := repo.CreatePost(ctx, &model.Post{User: author, Text: "first", Date: now.Add(-time.Minute)})
	require.NoError(t, err)
	newer, err := repo.CreatePost(ctx, &model.Post{User: author, Text: "second", Date: now})
	require.NoError(t, err)
	sameTime, err := repo.CreatePost(ctx, &model.Post{User: author, Text: "third", Date: now})
	require.NoError(t, err)

	posts, err := repo.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, sameTime.ID, posts[0].ID)
	assert.Equal(t, newer.ID, posts[1].ID)
	assert.Equal(t, older.ID, posts[2].ID)

	loaded, err := repo.GetPost(ctx, older.ID.Hex())
	require.NoError(t, err)
	loaded.Likes = append(loaded.Likes, model.Like{ID: bson.NewObjectID(), User: author})
	require.NoError(t, repo.SavePost(ctx, loaded))

	reloaded, err := repo.GetPost(ctx, older.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, reloaded.Likes, 1)

	require.NoError(t, repo.DeletePost(ctx, older.ID.Hex()))
	assert.ErrorIs(t, repo.DeletePost(ctx, older.ID.Hex()), mongo.ErrNoDocuments)
	assert.ErrorIs(t, repo.DeletePost(ctx, "123"), mongo.ErrNoDocuments)
	assert.ErrorIs(t, repo.SavePost(ctx, loaded), mongo.ErrNoDocuments)
}

func TestUpsertProfileParams_SetFields(t *testing.T) {
	fields := UpsertProfileParams{
		Status:    strPtr("Dev"),
		Skills:    []string{"go"},
		Instagram: strPtr(""),
	}.setFields()

	assert.Equal(t, bson.M{
		"status":           "Dev",
		"skills":           []string{"go"},
		"social.instagram": "",
	}, fields)
}
