package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blacnova/dashboard-server/internal/model"
)

const userAgent = "blacnova-dashboard"

// Internal seam over http.Client to enable testing without a live API.
type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ model.ContentStore = (*Client)(nil)

// Client talks to the GitHub Contents API. The API token comes from
// process configuration and is reused for every call; per-call deadlines
// are bounded by the underlying client timeout and the request context.
type Client struct {
	api     doer
	apiBase string
	token   string
}

// NewClient creates a Contents API client with a bounded per-call timeout.
func NewClient(token, apiBase string, timeout time.Duration) *Client {
	return NewClientWithDoer(&http.Client{Timeout: timeout}, token, apiBase)
}

// NewClientWithDoer allows injecting the HTTP layer (used in tests).
func NewClientWithDoer(api doer, token, apiBase string) *Client {
	return &Client{
		api:     api,
		apiBase: strings.TrimSuffix(apiBase, "/"),
		token:   token,
	}
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch"`
}

type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

type apiError struct {
	Message string `json:"message"`
}

// GetFile fetches one revision of the file at loc and its version tag.
func (c *Client) GetFile(ctx context.Context, loc model.RepoLocation) (model.ContentFile, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.apiBase, loc.Owner, loc.Repo, loc.ContentPath, loc.Branch)

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.ContentFile{}, err
	}

	var resp contentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.ContentFile{}, fmt.Errorf("%w: failed to decode contents response: %v", model.ErrUpstream, err)
	}

	// GitHub wraps base64 payloads at 60 columns.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		return model.ContentFile{}, fmt.Errorf("%w: failed to decode file content: %v", model.ErrUpstream, err)
	}

	return model.ContentFile{
		Content: raw,
		SHA:     resp.SHA,
	}, nil
}

// PutFile writes a new revision of the file at loc. The write carries the
// version tag of the revision it was based on; the API rejects the write
// when that tag is no longer current, surfaced as ErrVersionConflict.
func (c *Client) PutFile(ctx context.Context, loc model.RepoLocation, content []byte, message, sha string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.apiBase, loc.Owner, loc.Repo, loc.ContentPath)

	reqBody, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
		Branch:  loc.Branch,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal put request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPut, endpoint, reqBody)
	if err != nil {
		return "", err
	}

	var resp putResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to decode put response: %v", model.ErrUpstream, err)
	}

	return resp.Content.SHA, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, reqBody []byte) ([]byte, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		bodyReader = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.api.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request timed out", model.ErrUpstream)
		}
		return nil, fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", model.ErrUpstream, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	return nil, c.mapStatus(resp.StatusCode, body)
}

func isStaleSHAMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "does not match") || strings.Contains(lower, `"sha"`)
}

// mapStatus translates upstream failures into the error taxonomy,
// preserving the upstream message. The token never appears in responses,
// so the message is safe to propagate.
func (c *Client) mapStatus(status int, body []byte) error {
	var upstream apiError
	_ = json.Unmarshal(body, &upstream)
	msg := upstream.Message
	if msg == "" {
		msg = fmt.Sprintf("unexpected status %d", status)
	}

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", model.ErrNotFound, msg)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", model.ErrUpstreamAuth, msg)
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s", model.ErrVersionConflict, msg)
	case status == http.StatusUnprocessableEntity && isStaleSHAMessage(msg):
		// GitHub reports some stale-tag writes as 422 rather than 409.
		return fmt.Errorf("%w: %s", model.ErrVersionConflict, msg)
	default:
		return fmt.Errorf("%w: %s", model.ErrUpstream, msg)
	}
}
