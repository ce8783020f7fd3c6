package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/repository"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendHTML(to []string, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

type mockGitHubClient struct {
	mock.Mock
}

func (m *mockGitHubClient) ListRepositories(ctx context.Context, username string) ([]json.RawMessage, error) {
	args := m.Called(ctx, username)
	repos, _ := args.Get(0).([]json.RawMessage)
	return repos, args.Error(1)
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) IssueToken(userID string) (string, error) {
	return "token-" + userID, nil
}

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func createUser(t *testing.T, repo repository.UserRepository, name, email string) *model.User {
	t.Helper()

	user, err := repo.CreateUser(context.Background(), &model.User{
		FullName: name,
		Email:    email,
		Avatar:   "https://s.gravatar.com/avatar/" + name,
	})
	require.NoError(t, err)

	return user
}

func strPtr(s string) *string { return &s }
