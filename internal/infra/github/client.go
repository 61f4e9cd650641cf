// Package github implements the issue-search client on top of go-github.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/google/go-github/v63/github"
	"golang.org/x/oauth2"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// UserAgent is sent with every request.
const UserAgent = "changelog-generator"

// nextLinkPattern matches the next relation of a Link header.
var nextLinkPattern = regexp.MustCompile(`<([^>]*)>; rel="next"`)

// Ensure Client implements domain.IssueClient.
var _ domain.IssueClient = (*Client)(nil)

// Client fetches search result pages from the GitHub API.
type Client struct {
	httpClient *http.Client // Base client; credentials are layered on top per request
}

// NewClient creates a new Client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// searchResult is the body of a search response.
type searchResult struct {
	Items []domain.IssueRecord `json:"items"`
}

// Execute fetches one page of search results from url.
// Non-2xx responses are returned as *domain.APIError.
func (c *Client) Execute(ctx context.Context, url string, creds domain.Credentials) (*domain.IssueClientResponse, error) {
	gh := c.clientFor(ctx, creds)

	req, err := gh.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := gh.BareDo(ctx, req)
	if err != nil {
		return nil, toAPIError(resp, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return &domain.IssueClientResponse{
		Items:   result.Items,
		NextURL: NextURL(resp.Header.Values("Link")),
	}, nil
}

// clientFor returns a go-github client authenticating with creds.
func (c *Client) clientFor(ctx context.Context, creds domain.Credentials) *github.Client {
	var httpClient *http.Client
	switch cr := creds.(type) {
	case nil:
		httpClient = c.httpClient
	case domain.OAuthToken:
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cr.Token, TokenType: "token"})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient), ts)
	case domain.UsernamePassword:
		tp := &github.BasicAuthTransport{
			Username:  cr.Username,
			Password:  cr.Password,
			Transport: c.baseTransport(),
		}
		httpClient = tp.Client()
	default:
		httpClient = &http.Client{
			Transport: &headerTransport{header: cr.AuthorizationHeader(), base: c.baseTransport()},
		}
	}

	gh := github.NewClient(httpClient)
	gh.UserAgent = UserAgent
	return gh
}

func (c *Client) baseTransport() http.RoundTripper {
	if c.httpClient.Transport != nil {
		return c.httpClient.Transport
	}
	return http.DefaultTransport
}

// headerTransport sets a precomputed Authorization header.
type headerTransport struct {
	base   http.RoundTripper
	header string
}

// RoundTrip implements http.RoundTripper.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", t.header)
	return t.base.RoundTrip(r)
}

// toAPIError converts go-github errors for non-2xx responses into
// *domain.APIError. Transport errors are wrapped unchanged.
func toAPIError(resp *github.Response, err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &domain.APIError{StatusCode: errResp.Response.StatusCode, Message: errResp.Message}
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &domain.APIError{StatusCode: rateErr.Response.StatusCode, Message: rateErr.Message}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return &domain.APIError{StatusCode: abuseErr.Response.StatusCode, Message: abuseErr.Message}
	}
	if resp != nil && resp.Response != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return &domain.APIError{StatusCode: resp.StatusCode}
	}
	return fmt.Errorf("request search API: %w", err)
}

// NextURL returns the URL of the next relation found in the Link header
// values, or an empty string. Each value may list several relations
// separated by commas.
func NextURL(linkHeaders []string) string {
	for _, value := range linkHeaders {
		if m := nextLinkPattern.FindStringSubmatch(value); m != nil {
			return m[1]
		}
	}
	return ""
}
