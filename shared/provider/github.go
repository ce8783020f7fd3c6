package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	DefaultGitHubAPIURL  = "https://api.github.com"
	defaultGitHubTimeout = 10 * time.Second
	gitHubUserAgent      = "devconnector-api"
)

var ErrGitHubProfileNotFound = errors.New("github profile not found")

// GitHubProvider lists public repositories of GitHub users.
type GitHubProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewGitHubProvider creates a GitHub client. With a non-empty token, requests are authenticated
// through an oauth2 static token source, which raises the API rate limit.
func NewGitHubProvider(ctx context.Context, baseURL, token string, timeout time.Duration) *GitHubProvider {
	if baseURL == "" {
		baseURL = DefaultGitHubAPIURL
	}
	if timeout <= 0 {
		timeout = defaultGitHubTimeout
	}

	client := &http.Client{}
	if token != "" {
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	client.Timeout = timeout

	return &GitHubProvider{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ListRepositories returns the five oldest repositories of username as raw GitHub JSON objects.
// Any non-200 answer is reported as ErrGitHubProfileNotFound.
func (p *GitHubProvider) ListRepositories(ctx context.Context, username string) ([]json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", p.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request failed: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", gitHubUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrGitHubProfileNotFound
	}

	var repos []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decode github repositories failed: %w", err)
	}

	return repos, nil
}
