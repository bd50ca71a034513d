// Package client talks to the submission API over HTTP. It is used by the
// terminal wizard and the export CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/response"
	"github.com/edustar/intake-backend/internal/validator"
)

const defaultTimeout = 10 * time.Second

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Code       response.ErrCode
	Message    string
	Details    string
	Errors     []validator.FieldError
	RequestID  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return fmt.Sprintf("api %d: %s", e.StatusCode, msg)
}

// FieldErrors returns the server's per-field validation errors, if any.
func (e *APIError) FieldErrors() []validator.FieldError {
	return e.Errors
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client is a typed client for /api/submissions.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 10s-timeout http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the server at baseURL, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create submits a questionnaire. The returned reference number is the one
// the server stored.
func (c *Client) Create(ctx context.Context, in *model.SubmissionInput) (*model.CreateSubmissionResponse, error) {
	var out model.CreateSubmissionResponse
	if err := c.do(ctx, http.MethodPost, "/api/submissions", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches one submission by reference number.
func (c *Client) Get(ctx context.Context, ref string) (*model.Submission, error) {
	var out model.Submission
	if err := c.do(ctx, http.MethodGet, "/api/submissions/"+url.PathEscape(ref), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List fetches every submission, newest first.
func (c *Client) List(ctx context.Context) ([]model.Submission, error) {
	var out []model.Submission
	if err := c.do(ctx, http.MethodGet, "/api/submissions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(response.HeaderRequestID, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get(response.HeaderRequestID),
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var body response.ErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Details = strings.TrimSpace(string(raw))
		return apiErr
	}

	apiErr.Code = body.Code
	apiErr.Message = body.Error
	apiErr.Details = body.Details
	apiErr.Errors = body.Errors
	return apiErr
}
