// Package feedback submits in-app feedback as GitHub issues.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// Feedback kinds recognized by Submit. Anything else is labeled generically.
const (
	KindFeature  = "feature"
	KindBug      = "bug"
	KindFeedback = "feedback"
)

// Issue is the created GitHub issue.
type Issue struct {
	Number int64
	URL    string
}

type issueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

type issueResponse struct {
	Number  int64  `json:"number"`
	HTMLURL string `json:"html_url"`
}

// Client posts feedback to the issue tracker of one repository.
type Client struct {
	httpClient *http.Client
	baseURL    string
	repo       string // "owner/name"
	token      string
}

func NewClient(token, repo string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		repo:       repo,
		token:      token,
	}
}

// Submit files an issue for one piece of user feedback. The kind selects the
// labels; the app version is appended to the body so reports are traceable to
// a release.
func (c *Client) Submit(ctx context.Context, kind, title, description, appVersion string) (*Issue, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title must not be empty")
	}

	req := issueRequest{
		Title:  title,
		Body:   fmt.Sprintf("%s\n\n---\n*Sent from Tally v%s via in-app feedback*", strings.TrimSpace(description), appVersion),
		Labels: labelsFor(kind),
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode issue: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/issues", c.baseURL, c.repo)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("User-Agent", "Tally-App")
	httpReq.Header.Set("Accept", "application/vnd.github+json")
	httpReq.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post issue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("github api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var created issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &Issue{Number: created.Number, URL: created.HTMLURL}, nil
}

func labelsFor(kind string) []string {
	switch kind {
	case KindFeature:
		return []string{"enhancement", "from-app"}
	case KindBug:
		return []string{"bug", "from-app"}
	case KindFeedback:
		return []string{"feedback", "from-app"}
	default:
		return []string{"from-app"}
	}
}
