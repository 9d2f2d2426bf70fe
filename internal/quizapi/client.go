// Package quizapi is a client for the quiz API serving quiz sets by difficulty.
package quizapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aliskhannn/kenpo-quiz-bot/internal/domain/entities"
)

const quizzesPath = "/api/quizzes/"

// FetchError is returned when a quiz set cannot be obtained: transport
// failure, non-2xx status or a malformed body.
type FetchError struct {
	Difficulty entities.Difficulty
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch quizzes %q: unexpected status %d", e.Difficulty, e.StatusCode)
	}
	return fmt.Sprintf("fetch quizzes %q: %v", e.Difficulty, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client fetches quiz sets over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
// A nil httpClient falls back to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchQuizzes returns the quiz set for the difficulty in server order.
func (c *Client) FetchQuizzes(ctx context.Context, difficulty entities.Difficulty) ([]entities.Quiz, error) {
	endpoint := c.baseURL + quizzesPath + url.PathEscape(difficulty.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Difficulty: difficulty, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Difficulty: difficulty, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Difficulty: difficulty,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %s", resp.Status),
		}
	}

	var quizzes []entities.Quiz
	if err := json.NewDecoder(resp.Body).Decode(&quizzes); err != nil {
		return nil, &FetchError{Difficulty: difficulty, Err: fmt.Errorf("decode quizzes: %w", err)}
	}

	return quizzes, nil
}
