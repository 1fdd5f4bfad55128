// Package client is a typed HTTP client for the quiz API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "http://localhost:5000/api"

// APIError is a non-2xx response decoded from the {"error": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// ErrNotSignedIn is returned by calls that need a token when the session has none.
var ErrNotSignedIn = errors.New("not signed in; run `quizctl login` first")

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for baseURL (including the /api prefix) bound to session.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if session == nil {
		session = NewMemorySession()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// ===== AUTH =====

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", false, body, &resp); err != nil {
		return nil, err
	}
	if err := c.session.Set(resp.Token, &resp.User); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", false, body, &resp); err != nil {
		return nil, err
	}
	if err := c.session.Set(resp.Token, &resp.User); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout() error {
	return c.session.Clear()
}

// ===== QUIZZES =====

func (c *Client) ListQuizzes(ctx context.Context) ([]QuizSummary, error) {
	var quizzes []QuizSummary
	if err := c.do(ctx, http.MethodGet, "/quiz", false, nil, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (c *Client) MyQuizzes(ctx context.Context) ([]QuizSummary, error) {
	var quizzes []QuizSummary
	if err := c.do(ctx, http.MethodGet, "/quiz/my-quizzes", true, nil, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (c *Client) GetQuiz(ctx context.Context, id uint) (*Quiz, error) {
	var quiz Quiz
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/quiz/%d", id), true, nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (c *Client) CreateQuiz(ctx context.Context, quiz *NewQuiz) (*CreatedQuiz, error) {
	var created CreatedQuiz
	if err := c.do(ctx, http.MethodPost, "/quiz", true, quiz, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteQuiz(ctx context.Context, id uint) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/quiz/%d", id), true, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) SubmitQuiz(ctx context.Context, id uint, submission Submission) (*SubmissionResult, error) {
	if submission.Answers == nil {
		submission.Answers = Answers{}
	}
	var result SubmissionResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/quiz/%d/submit", id), true, submission, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ===== RESULTS =====

func (c *Client) MyResults(ctx context.Context) ([]Result, error) {
	var results []Result
	if err := c.do(ctx, http.MethodGet, "/quiz/my-results", true, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ExportResults downloads the caller's results workbook.
func (c *Client) ExportResults(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.do(ctx, http.MethodGet, "/quiz/my-results/export", true, nil, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.do(ctx, http.MethodGet, "/health", false, nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// do sends one request. out may be a *bytes.Buffer to receive the raw body.
// A 401 on an authenticated call clears the stored session.
func (c *Client) do(ctx context.Context, method, path string, authenticated bool, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		token := c.session.token()
		if token == "" {
			return ErrNotSignedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		if resp.StatusCode == http.StatusUnauthorized && authenticated {
			if cerr := c.session.Clear(); cerr != nil {
				return errors.Join(apiErr, cerr)
			}
		}
		return apiErr
	}

	switch dst := out.(type) {
	case nil:
		return nil
	case *bytes.Buffer:
		_, err := dst.Write(raw)
		return err
	default:
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
}
