package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/devconnector-api/shared/provider"
)

// ProfileUsecase defines the interface for profile-related use cases.
type ProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID string) (*model.ProfileDetails, error)
	UpsertProfile(ctx context.Context, userID string, params UpsertProfileParams) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]*model.ProfileDetails, error)
	GetProfileByUserID(ctx context.Context, userID string) (*model.ProfileDetails, error)
	DeleteAccount(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, userID string, entries []ExperienceParams) (*model.Profile, error)
	RemoveExperience(ctx context.Context, userID, experienceID string) (*model.Profile, error)
	AddEducation(ctx context.Context, userID string, entries []EducationParams) (*model.Profile, error)
	RemoveEducation(ctx context.Context, userID, educationID string) (*model.Profile, error)
	GetGitHubRepositories(ctx context.Context, username string) ([]json.RawMessage, error)
}

// UpsertProfileParams defines the optional profile fields. Only the fields that are not nil are written.
type UpsertProfileParams = repository.UpsertProfileParams

// ExperienceParams defines a job entry to append to a profile.
type ExperienceParams struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// EducationParams defines a school entry to append to a profile.
type EducationParams struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

var (
	ErrProfileNotFound       = errors.New("profile not found")
	ErrExperienceNotFound    = errors.New("experience not found")
	ErrEducationNotFound     = errors.New("education not found")
	ErrGitHubProfileNotFound = errors.New("github profile not found")
)

// GitHubClient lists the public repositories of a GitHub user.
type GitHubClient interface {
	ListRepositories(ctx context.Context, username string) ([]json.RawMessage, error)
}

type profileUsecase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	github      GitHubClient
}

func NewProfileUsecase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	github GitHubClient,
) ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		github:      github,
	}
}

func (u *profileUsecase) GetMyProfile(ctx context.Context, userID string) (*model.ProfileDetails, error) {
	return u.GetProfileByUserID(ctx, userID)
}

func (u *profileUsecase) UpsertProfile(
	ctx context.Context,
	userID string,
	params UpsertProfileParams,
) (*model.Profile, error) {
	if _, err := callerID(userID); err != nil {
		return nil, err
	}

	return u.profileRepo.UpsertProfile(ctx, userID, params)
}

func (u *profileUsecase) ListProfiles(ctx context.Context) ([]*model.ProfileDetails, error) {
	profiles, err := u.profileRepo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	return u.populate(ctx, profiles)
}

func (u *profileUsecase) GetProfileByUserID(ctx context.Context, userID string) (*model.ProfileDetails, error) {
	profile, err := u.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	details, err := u.populate(ctx, []*model.Profile{profile})
	if err != nil {
		return nil, err
	}

	return details[0], nil
}

// populate replaces the owner reference of each profile with the owner's public fields.
func (u *profileUsecase) populate(ctx context.Context, profiles []*model.Profile) ([]*model.ProfileDetails, error) {
	ids := make([]bson.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.User)
	}

	users, err := u.userRepo.ListUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	owners := make(map[bson.ObjectID]*model.UserSummary, len(users))
	for _, user := range users {
		owners[user.ID] = user.Summary()
	}

	details := make([]*model.ProfileDetails, 0, len(profiles))
	for _, p := range profiles {
		details = append(details, &model.ProfileDetails{Profile: p, User: owners[p.User]})
	}

	return details, nil
}

// DeleteAccount removes the profile and then the user. The user's posts are kept.
func (u *profileUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if err := u.profileRepo.DeleteProfileByUserID(ctx, userID); err != nil &&
		!errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if err := u.userRepo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	return nil
}

func (u *profileUsecase) AddExperience(
	ctx context.Context,
	userID string,
	entries []ExperienceParams,
) (*model.Profile, error) {
	profile, err := u.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		profile.Experience = append(profile.Experience, model.Experience{
			ID:          bson.NewObjectID(),
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		})
	}

	if err := u.save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (u *profileUsecase) RemoveExperience(ctx context.Context, userID, experienceID string) (*model.Profile, error) {
	profile, err := u.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := slices.IndexFunc(profile.Experience, func(e model.Experience) bool { return e.ID.Hex() == experienceID })
	if index < 0 {
		return nil, ErrExperienceNotFound
	}
	profile.Experience = slices.Delete(profile.Experience, index, index+1)

	if err := u.save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (u *profileUsecase) AddEducation(
	ctx context.Context,
	userID string,
	entries []EducationParams,
) (*model.Profile, error) {
	profile, err := u.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		profile.Education = append(profile.Education, model.Education{
			ID:           bson.NewObjectID(),
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From,
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		})
	}

	if err := u.save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (u *profileUsecase) RemoveEducation(ctx context.Context, userID, educationID string) (*model.Profile, error) {
	profile, err := u.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := slices.IndexFunc(profile.Education, func(e model.Education) bool { return e.ID.Hex() == educationID })
	if index < 0 {
		return nil, ErrEducationNotFound
	}
	profile.Education = slices.Delete(profile.Education, index, index+1)

	if err := u.save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (u *profileUsecase) GetGitHubRepositories(ctx context.Context, username string) ([]json.RawMessage, error) {
	repos, err := u.github.ListRepositories(ctx, username)
	if err != nil {
		if errors.Is(err, provider.ErrGitHubProfileNotFound) {
			return nil, ErrGitHubProfileNotFound
		}

		return nil, err
	}

	return repos, nil
}

func (u *profileUsecase) profile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := u.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}

		return nil, err
	}

	return profile, nil
}

func (u *profileUsecase) save(ctx context.Context, profile *model.Profile) error {
	if err := u.profileRepo.SaveProfile(ctx, profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProfileNotFound
		}

		return err
	}

	return nil
}
