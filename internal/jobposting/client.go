package jobposting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.apify.com/v2"
	actorID        = "apimaestro~linkedin-job-detail"
)

// ErrInvalidURL is returned when no LinkedIn job ID can be derived from the input URL.
var ErrInvalidURL = errors.New("job URL does not contain a LinkedIn job id")

// ErrEmptyPosting is returned when the actor response carries no usable description.
var ErrEmptyPosting = errors.New("job posting has no description")

// JobDetails is the normalized result of a posting extraction.
type JobDetails struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Client fetches LinkedIn job postings through the Apify actor API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new Apify-backed client.
func NewClient(token string) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("APIFY_TOKEN is required")
	}
	timeout := 90 * time.Second
	if raw := strings.TrimSpace(os.Getenv("APIFY_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// SetBaseURL overrides the Apify endpoint. Used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(base, "/")
}

var jobPathRe = regexp.MustCompile(`/jobs/view/(\d+)(?:/|$)`)

// JobIDFromURL extracts the numeric LinkedIn job ID from a posting URL.
// It accepts both the currentJobId query parameter and the /jobs/view/<id> path form.
func JobIDFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse job url: %w", err)
	}
	if id := strings.TrimSpace(parsed.Query().Get("currentJobId")); id != "" {
		return id, nil
	}
	if m := jobPathRe.FindStringSubmatch(parsed.Path); m != nil {
		return m[1], nil
	}
	return "", ErrInvalidURL
}

type actorInput struct {
	JobID string `json:"job_id"`
}

// Extract resolves the posting behind the given LinkedIn URL.
func (c *Client) Extract(ctx context.Context, jobURL string) (JobDetails, error) {
	jobID, err := JobIDFromURL(jobURL)
	if err != nil {
		return JobDetails{}, err
	}
	return c.extractByID(ctx, jobID)
}

func (c *Client) extractByID(ctx context.Context, jobID string) (JobDetails, error) {
	payload, err := json.Marshal(actorInput{JobID: jobID})
	if err != nil {
		return JobDetails{}, err
	}

	endpoint := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, actorID, url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return JobDetails{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return JobDetails{}, fmt.Errorf("apify request timeout: %w", err)
		}
		return JobDetails{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return JobDetails{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return JobDetails{}, fmt.Errorf("apify actor status %d: %s", resp.StatusCode, truncateBody(body))
	}

	details, err := parseActorItems(body)
	if err != nil {
		return JobDetails{}, err
	}
	return details, nil
}

func truncateBody(body []byte) string {
	const limit = 300
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
