package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/devconnector-api/shared/auth"
	"github.com/vasapolrittideah/devconnector-api/shared/provider"
	"github.com/vasapolrittideah/devconnector-api/shared/security"
)

func newTestAuthUsecase(t *testing.T, mailer WelcomeMailer) (AuthUsecase, *repository.UserMemoryRepository, *auth.JWTAuthenticator) {
	t.Helper()

	hasher, err := security.NewPasswordHasher(security.AlgorithmBcrypt)
	require.NoError(t, err)

	userRepo := repository.NewUserMemoryRepository()
	jwtAuth := auth.NewJWTAuthenticator("test-secret", time.Hour)

	return NewAuthUsecase(userRepo, hasher, jwtAuth, mailer, newTestLogger()), userRepo, jwtAuth
}

func TestAuthUsecase_Register(t *testing.T) {
	uc, userRepo, jwtAuth := newTestAuthUsecase(t, nil)
	ctx := context.Background()

	token, err := uc.Register(ctx, RegisterParams{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	userID, err := jwtAuth.VerifyToken(token)
	require.NoError(t, err)

	user, err := userRepo.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.FullName)
	assert.Equal(t, provider.GravatarURL("ada@example.com"), user.Avatar)
	assert.NotEqual(t, "password123", user.PasswordHash)

	ok, err := security.VerifyPassword("password123", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthUsecase_RegisterTwice(t *testing.T) {
	uc, _, _ := newTestAuthUsecase(t, nil)
	ctx := context.Background()
	params := RegisterParams{FullName: "Ada", Email: "ada@example.com", Password: "password123"}

	_, err := uc.Register(ctx, params)
	require.NoError(t, err)

	_, err = uc.Register(ctx, params)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthUsecase_RegisterSendsWelcomeEmail(t *testing.T) {
	mailer := &mockMailer{}
	mailer.On("SendHTML", []string{"ada@example.com"}, "Welcome to DevConnector", mock.AnythingOfType("string")).
		Return(nil).Once()

	uc, _, _ := newTestAuthUsecase(t, mailer)

	_, err := uc.Register(context.Background(), RegisterParams{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestAuthUsecase_RegisterIgnoresMailerFailure(t *testing.T) {
	mailer := &mockMailer{}
	mailer.On("SendHTML", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	uc, _, _ := newTestAuthUsecase(t, mailer)

	token, err := uc.Register(context.Background(), RegisterParams{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthUsecase_Login(t *testing.T) {
	uc, _, jwtAuth := newTestAuthUsecase(t, nil)
	ctx := context.Background()

	registered, err := uc.Register(ctx, RegisterParams{FullName: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	registeredID, err := jwtAuth.VerifyToken(registered)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		token, err := uc.Login(ctx, LoginParams{Email: "ada@example.com", Password: "password123"})
		require.NoError(t, err)

		userID, err := jwtAuth.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, registeredID, userID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, wrongPassword := uc.Login(ctx, LoginParams{Email: "ada@example.com", Password: "wrong-password"})
		_, unknownEmail := uc.Login(ctx, LoginParams{Email: "nobody@example.com", Password: "password123"})

		assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})
}

func TestAuthUsecase_LoginWithArgon2Hash(t *testing.T) {
	hasher, err := security.NewPasswordHasher(security.AlgorithmArgon2id)
	require.NoError(t, err)

	userRepo := repository.NewUserMemoryRepository()
	uc := NewAuthUsecase(userRepo, hasher, fakeTokenIssuer{}, nil, newTestLogger())
	ctx := context.Background()

	_, err = uc.Register(ctx, RegisterParams{FullName: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	token, err := uc.Login(ctx, LoginParams{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Contains(t, token, "token-")
}

func TestAuthUsecase_GetUser(t *testing.T) {
	uc, userRepo, _ := newTestAuthUsecase(t, nil)
	ctx := context.Background()
	user := createUser(t, userRepo, "Ada", "ada@example.com")

	found, err := uc.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	require.NoError(t, userRepo.DeleteUser(ctx, user.ID.Hex()))
	_, err = uc.GetUser(ctx, user.ID.Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
