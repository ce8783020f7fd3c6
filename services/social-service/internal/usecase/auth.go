package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/devconnector-api/shared/provider"
	"github.com/vasapolrittideah/devconnector-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (string, error)
	Login(ctx context.Context, params LoginParams) (string, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	FullName string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenIssuer issues an access token for a user id.
type TokenIssuer interface {
	IssueToken(userID string) (string, error)
}

// PasswordHasher hashes a password with a fresh salt.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// WelcomeMailer sends the welcome e-mail after registration.
type WelcomeMailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

type authUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	mailer   WelcomeMailer
	logger   *zerolog.Logger
}

// NewAuthUsecase creates the authentication use cases. mailer may be nil.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	mailer WelcomeMailer,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (string, error) {
	if _, err := u.userRepo.GetUserByEmail(ctx, params.Email); err == nil {
		return "", ErrUserAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	passwordHash, err := u.hasher.HashPassword(params.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		FullName:     params.FullName,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Avatar:       provider.GravatarURL(params.Email),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrUserAlreadyExists
		}

		return "", err
	}

	u.sendWelcome(user)

	return u.tokens.IssueToken(user.ID.Hex())
}

func (u *authUsecase) sendWelcome(user *model.User) {
	if u.mailer == nil {
		return
	}

	body := fmt.Sprintf("<p>Hi %s,</p><p>Welcome to DevConnector!</p>", user.FullName)
	if err := u.mailer.SendHTML([]string{user.Email}, "Welcome to DevConnector", body); err != nil {
		u.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to send welcome email")
	}
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrInvalidCredentials
		}

		return "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return "", err
	} else if !ok {
		return "", ErrInvalidCredentials
	}

	return u.tokens.IssueToken(user.ID.Hex())
}

func (u *authUsecase) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}
