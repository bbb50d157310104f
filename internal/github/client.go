// Package github is a minimal client for the two commit endpoints
// nightwatch polls. Both calls are required inputs for a run: any
// transport or status failure is returned as a typed error and aborts
// the run.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "nightwatch/internal/errors"
	"nightwatch/internal/version"
)

// clientTimeout bounds both commit calls. The reference behavior let them
// block indefinitely; a uniform bound is a deliberate hardening.
const clientTimeout = 30 * time.Second

// CommitSummary is one entry of the commit listing
type CommitSummary struct {
	SHA    string     `json:"sha"`
	URL    string     `json:"url"`
	Commit commitMeta `json:"commit"`
}

type commitMeta struct {
	Author commitAuthor `json:"author"`
}

type commitAuthor struct {
	Date time.Time `json:"date"`
}

// AuthorDate returns the commit's author timestamp.
func (c CommitSummary) AuthorDate() time.Time {
	return c.Commit.Author.Date
}

// FileChange is one changed file within a commit detail
type FileChange struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	RawURL   string `json:"raw_url"`
}

// CommitDetail is the per-commit file-change listing
type CommitDetail struct {
	SHA   string       `json:"sha"`
	Files []FileChange `json:"files"`
}

// Client calls the commit listing and commit detail endpoints
type Client struct {
	baseURL    string
	token      string
	pageSize   int
	httpClient *http.Client
}

// NewClient creates a client. token may be empty; it is only used to raise
// rate limits. baseURL is overridable for tests.
func NewClient(baseURL, token string, pageSize int) *Client {
	return &Client{
		baseURL:  baseURL,
		token:    token,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

// ListCommits returns the commits touching path in repo since the given
// time, newest first, capped at the client's page size.
func (c *Client) ListCommits(ctx context.Context, repo, path string, since time.Time) ([]CommitSummary, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/commits", c.baseURL, repo)

	params := url.Values{}
	params.Set("path", path)
	params.Set("since", since.UTC().Format(time.RFC3339))
	params.Set("per_page", fmt.Sprintf("%d", c.pageSize))

	var commits []CommitSummary
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &commits); err != nil {
		return nil, apperrors.Wrap(apperrors.CommitListFailed,
			fmt.Sprintf("listing commits for %s/%s", repo, path), err)
	}
	return commits, nil
}

// GetCommit fetches the file-change detail for one listed commit. The URL
// comes from the listing response.
func (c *Client) GetCommit(ctx context.Context, commitURL string) (*CommitDetail, error) {
	var detail CommitDetail
	if err := c.getJSON(ctx, commitURL, &detail); err != nil {
		return nil, apperrors.Wrap(apperrors.CommitDetailFailed,
			fmt.Sprintf("fetching commit detail from %s", commitURL), err)
	}
	return &detail, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "nightwatch/"+version.Version)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
