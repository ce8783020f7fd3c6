package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/repository"
)

type postFixture struct {
	uc    PostUsecase
	alice *model.User
	bob   *model.User
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()

	userRepo := repository.NewUserMemoryRepository()

	return &postFixture{
		uc:    NewPostUsecase(repository.NewPostMemoryRepository(), userRepo),
		alice: createUser(t, userRepo, "Alice", "alice@example.com"),
		bob:   createUser(t, userRepo, "Bob", "bob@example.com"),
	}
}

func (f *postFixture) createPost(t *testing.T, author *model.User, text string) *model.Post {
	t.Helper()

	post, err := f.uc.CreatePost(context.Background(), author.ID.Hex(), text)
	require.NoError(t, err)

	return post
}

func TestPostUsecase_CreateAndList(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	first := f.createPost(t, f.alice, "first")
	second := f.createPost(t, f.bob, "second")

	assert.Equal(t, "Alice", first.Name)
	assert.Equal(t, f.alice.Avatar, first.Avatar)
	assert.Equal(t, f.alice.ID, first.User)
	assert.Empty(t, first.Likes)
	assert.Empty(t, first.Comments)

	posts, err := f.uc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	_, err = f.uc.CreatePost(ctx, bson.NewObjectID().Hex(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostUsecase_GetPost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	post := f.createPost(t, f.alice, "hello")

	found, err := f.uc.GetPost(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Text)

	_, err = f.uc.GetPost(ctx, bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.uc.GetPost(ctx, "malformed")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostUsecase_DeletePost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	post := f.createPost(t, f.alice, "hello")

	assert.ErrorIs(t, f.uc.DeletePost(ctx, f.bob.ID.Hex(), post.ID.Hex()), ErrNotAuthorized)
	require.NoError(t, f.uc.DeletePost(ctx, f.alice.ID.Hex(), post.ID.Hex()))

	assert.ErrorIs(t, f.uc.DeletePost(ctx, f.alice.ID.Hex(), post.ID.Hex()), ErrPostNotFound)
	assert.ErrorIs(t, f.uc.DeletePost(ctx, f.alice.ID.Hex(), "not-an-object-id"), ErrPostNotFound)
}

func TestPostUsecase_LikeAndUnlike(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	post := f.createPost(t, f.alice, "hello")

	likes, err := f.uc.LikePost(ctx, f.bob.ID.Hex(), post.ID.Hex())
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, f.bob.ID, likes[0].User)

	_, err = f.uc.LikePost(ctx, f.bob.ID.Hex(), post.ID.Hex())
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	likes, err = f.uc.LikePost(ctx, f.alice.ID.Hex(), post.ID.Hex())
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Equal(t, f.alice.ID, likes[0].User, "newest like comes first")

	likes, err = f.uc.UnlikePost(ctx, f.bob.ID.Hex(), post.ID.Hex())
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, f.alice.ID, likes[0].User)

	_, err = f.uc.UnlikePost(ctx, f.bob.ID.Hex(), post.ID.Hex())
	assert.ErrorIs(t, err, ErrNotLiked)

	_, err = f.uc.LikePost(ctx, f.bob.ID.Hex(), "bogus")
	assert.ErrorIs(t, err, ErrPostNotFound)

	stored, err := f.uc.GetPost(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, stored.Likes, 1)
}

func TestPostUsecase_Comments(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	post := f.createPost(t, f.alice, "hello")

	comments, err := f.uc.AddComment(ctx, f.bob.ID.Hex(), post.ID.Hex(), "first")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Bob", comments[0].Name)
	assert.Equal(t, f.bob.Avatar, comments[0].Avatar)

	comments, err = f.uc.AddComment(ctx, f.bob.ID.Hex(), post.ID.Hex(), "second")
	require.NoError(t, err)
	comments, err = f.uc.AddComment(ctx, f.bob.ID.Hex(), post.ID.Hex(), "third")
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Text)

	second := comments[1]
	require.Equal(t, "second", second.Text)

	_, err = f.uc.RemoveComment(ctx, f.alice.ID.Hex(), post.ID.Hex(), second.ID.Hex())
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = f.uc.RemoveComment(ctx, f.bob.ID.Hex(), post.ID.Hex(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrCommentNotFound)

	comments, err = f.uc.RemoveComment(ctx, f.bob.ID.Hex(), post.ID.Hex(), second.ID.Hex())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "third", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)
}
