package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/model"
)

// Memory repositories keep documents in process. They back STORE_DRIVER=memory and the tests,
// and report missing documents with mongo.ErrNoDocuments like the Mongo repositories do.
// Every read and write copies the document so callers never share state with the store.

var (
	_ UserRepository    = (*UserMemoryRepository)(nil)
	_ ProfileRepository = (*ProfileMemoryRepository)(nil)
	_ PostRepository    = (*PostMemoryRepository)(nil)
)

// UserMemoryRepository is an in-memory implementation of UserRepository.
type UserMemoryRepository struct {
	mu    sync.RWMutex
	users map[bson.ObjectID]model.User
}

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{users: make(map[bson.ObjectID]model.User)}
}

func (r *UserMemoryRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, ErrDuplicateEmail
		}
	}

	user.ID = bson.NewObjectID()
	if user.Date.IsZero() {
		user.Date = time.Now()
	}
	r.users[user.ID] = *user

	return user, nil
}

func (r *UserMemoryRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &user, nil
}

func (r *UserMemoryRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *UserMemoryRepository) ListUsersByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, &user)
		}
	}
	return users, nil
}

func (r *UserMemoryRepository) DeleteUser(_ context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[objectID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.users, objectID)
	return nil
}

// ProfileMemoryRepository is an in-memory implementation of ProfileRepository.
type ProfileMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[bson.ObjectID]*model.Profile // keyed by owner
}

func NewProfileMemoryRepository() *ProfileMemoryRepository {
	return &ProfileMemoryRepository{profiles: make(map[bson.ObjectID]*model.Profile)}
}

func (r *ProfileMemoryRepository) GetProfileByUserID(_ context.Context, userID string) (*model.Profile, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cloneProfile(profile), nil
}

func (r *ProfileMemoryRepository) UpsertProfile(
	_ context.Context,
	userID string,
	params UpsertProfileParams,
) (*model.Profile, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[objectID]
	if !ok {
		profile = &model.Profile{
			ID:         bson.NewObjectID(),
			User:       objectID,
			Experience: []model.Experience{},
			Education:  []model.Education{},
			Date:       time.Now(),
		}
		r.profiles[objectID] = profile
	}

	apply := func(dst *string, value *string) {
		if value != nil {
			*dst = *value
		}
	}
	apply(&profile.Company, params.Company)
	apply(&profile.Website, params.Website)
	apply(&profile.Location, params.Location)
	apply(&profile.Status, params.Status)
	apply(&profile.Bio, params.Bio)
	apply(&profile.GithubUsername, params.GithubUsername)
	apply(&profile.Social.YouTube, params.YouTube)
	apply(&profile.Social.Twitter, params.Twitter)
	apply(&profile.Social.Facebook, params.Facebook)
	apply(&profile.Social.LinkedIn, params.LinkedIn)
	apply(&profile.Social.Instagram, params.Instagram)
	if params.Skills != nil {
		profile.Skills = slices.Clone(params.Skills)
	}

	return cloneProfile(profile), nil
}

func (r *ProfileMemoryRepository) ListProfiles(_ context.Context) ([]*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*model.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		profiles = append(profiles, cloneProfile(profile))
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Date.Before(profiles[j].Date) })
	return profiles, nil
}

func (r *ProfileMemoryRepository) SaveProfile(_ context.Context, profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.profiles[profile.User]
	if !ok || stored.ID != profile.ID {
		return mongo.ErrNoDocuments
	}
	r.profiles[profile.User] = cloneProfile(profile)
	return nil
}

func (r *ProfileMemoryRepository) DeleteProfileByUserID(_ context.Context, userID string) error {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.profiles, objectID)
	return nil
}

// PostMemoryRepository is an in-memory implementation of PostRepository.
type PostMemoryRepository struct {
	mu    sync.RWMutex
	posts map[bson.ObjectID]*model.Post
	order []bson.ObjectID
}

func NewPostMemoryRepository() *PostMemoryRepository {
	return &PostMemoryRepository{posts: make(map[bson.ObjectID]*model.Post)}
}

func (r *PostMemoryRepository) CreatePost(_ context.Context, post *model.Post) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = bson.NewObjectID()
	if post.Date.IsZero() {
		post.Date = time.Now()
	}
	if post.Likes == nil {
		post.Likes = []model.Like{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	r.posts[post.ID] = clonePost(post)
	r.order = append(r.order, post.ID)
	return post, nil
}

func (r *PostMemoryRepository) GetPost(_ context.Context, id string) (*model.Post, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return clonePost(post), nil
}

// ListPosts returns posts newest first. Posts with equal dates keep reverse insertion order.
func (r *PostMemoryRepository) ListPosts(_ context.Context) ([]*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*model.Post, 0, len(r.posts))
	for i := len(r.order) - 1; i >= 0; i-- {
		if post, ok := r.posts[r.order[i]]; ok {
			posts = append(posts, clonePost(post))
		}
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date.After(posts[j].Date) })
	return posts, nil
}

func (r *PostMemoryRepository) SavePost(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *PostMemoryRepository) DeletePost(_ context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[objectID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.posts, objectID)
	r.order = slices.DeleteFunc(r.order, func(id bson.ObjectID) bool { return id == objectID })
	return nil
}

func cloneProfile(p *model.Profile) *model.Profile {
	c := *p
	c.Skills = slices.Clone(p.Skills)
	c.Experience = slices.Clone(p.Experience)
	c.Education = slices.Clone(p.Education)
	for i := range c.Experience {
		c.Experience[i].To = cloneTime(c.Experience[i].To)
	}
	for i := range c.Education {
		c.Education[i].To = cloneTime(c.Education[i].To)
	}
	return &c
}

func clonePost(p *model.Post) *model.Post {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	c.Comments = slices.Clone(p.Comments)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
