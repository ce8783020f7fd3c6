package usecase

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/repository"
)

// PostUsecase defines the interface for post-related use cases.
type PostUsecase interface {
	CreatePost(ctx context.Context, userID, text string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPost(ctx context.Context, postID string) (*model.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
	LikePost(ctx context.Context, userID, postID string) ([]model.Like, error)
	UnlikePost(ctx context.Context, userID, postID string) ([]model.Like, error)
	AddComment(ctx context.Context, userID, postID, text string) ([]model.Comment, error)
	RemoveComment(ctx context.Context, userID, postID, commentID string) ([]model.Comment, error)
}

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotAuthorized   = errors.New("user not authorized")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrCommentNotFound = errors.New("comment does not exist")
)

type postUsecase struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostUsecase(postRepo repository.PostRepository, userRepo repository.UserRepository) PostUsecase {
	return &postUsecase{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (u *postUsecase) CreatePost(ctx context.Context, userID, text string) (*model.Post, error) {
	author, err := u.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	return u.postRepo.CreatePost(ctx, &model.Post{
		User:     author.ID,
		Text:     text,
		Name:     author.FullName,
		Avatar:   author.Avatar,
		Likes:    []model.Like{},
		Comments: []model.Comment{},
		Date:     time.Now(),
	})
}

func (u *postUsecase) ListPosts(ctx context.Context) ([]*model.Post, error) {
	return u.postRepo.ListPosts(ctx)
}

func (u *postUsecase) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	post, err := u.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}

		return nil, err
	}

	return post, nil
}

func (u *postUsecase) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := u.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.User.Hex() != userID {
		return ErrNotAuthorized
	}

	if err := u.postRepo.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}

		return err
	}

	return nil
}

func (u *postUsecase) LikePost(ctx context.Context, userID, postID string) ([]model.Like, error) {
	caller, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	post, err := u.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if slices.ContainsFunc(post.Likes, func(l model.Like) bool { return l.User == caller }) {
		return nil, ErrAlreadyLiked
	}

	post.Likes = slices.Insert(post.Likes, 0, model.Like{ID: bson.NewObjectID(), User: caller})

	if err := u.save(ctx, post); err != nil {
		return nil, err
	}

	return post.Likes, nil
}

func (u *postUsecase) UnlikePost(ctx context.Context, userID, postID string) ([]model.Like, error) {
	caller, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	post, err := u.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	index := slices.IndexFunc(post.Likes, func(l model.Like) bool { return l.User == caller })
	if index < 0 {
		return nil, ErrNotLiked
	}

	post.Likes = slices.Delete(post.Likes, index, index+1)

	if err := u.save(ctx, post); err != nil {
		return nil, err
	}

	return post.Likes, nil
}

func (u *postUsecase) AddComment(ctx context.Context, userID, postID, text string) ([]model.Comment, error) {
	author, err := u.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := u.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Comments = slices.Insert(post.Comments, 0, model.Comment{
		ID:     bson.NewObjectID(),
		User:   author.ID,
		Text:   text,
		Name:   author.FullName,
		Avatar: author.Avatar,
		Date:   time.Now(),
	})

	if err := u.save(ctx, post); err != nil {
		return nil, err
	}

	return post.Comments, nil
}

// RemoveComment removes the comment with the given id. Only its author may remove it.
func (u *postUsecase) RemoveComment(
	ctx context.Context,
	userID, postID, commentID string,
) ([]model.Comment, error) {
	post, err := u.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	index := slices.IndexFunc(post.Comments, func(c model.Comment) bool { return c.ID.Hex() == commentID })
	if index < 0 {
		return nil, ErrCommentNotFound
	}

	if post.Comments[index].User.Hex() != userID {
		return nil, ErrNotAuthorized
	}

	post.Comments = slices.Delete(post.Comments, index, index+1)

	if err := u.save(ctx, post); err != nil {
		return nil, err
	}

	return post.Comments, nil
}

func (u *postUsecase) author(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *postUsecase) save(ctx context.Context, post *model.Post) error {
	if err := u.postRepo.SavePost(ctx, post); err != nil {
		// The post was deleted between load and save.
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}

		return err
	}

	return nil
}
