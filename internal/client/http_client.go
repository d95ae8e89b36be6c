package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dareboard/internal/apiutil"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// HTTPClient performs authenticated GETs against the platform API, retrying
// transient failures with exponential backoff.
type HTTPClient struct {
	client     *http.Client
	baseURL    string
	token      string
	name       string // client name for logging and User-Agent
	maxRetries int
	retryWait  time.Duration
}

// NewHTTPClient creates a client with default settings
func NewHTTPClient(name string, timeoutSec int) *HTTPClient {
	if timeoutSec == 0 {
		timeoutSec = 30 // default timeout
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		name:       name,
		maxRetries: 3,
		retryWait:  200 * time.Millisecond,
	}
}

// SetBaseURL sets the base URL for all requests
func (c *HTTPClient) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// SetToken sets the bearer token sent with every request
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// SetRetry sets how many times a transient failure is retried and the first
// wait between attempts.
func (c *HTTPClient) SetRetry(maxRetries int, initialWait time.Duration) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	c.maxRetries = maxRetries
	if initialWait > 0 {
		c.retryWait = initialWait
	}
}

// Get makes a GET request. Non-2xx responses come back as *apiutil.FetchError
// carrying the status and any server-supplied message.
func (c *HTTPClient) Get(ctx context.Context, endpoint string, query url.Values) (*HTTPResponse, error) {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	attempt := 0
	op := func() (*HTTPResponse, error) {
		attempt++
		return c.do(ctx, u, attempt)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().
			Str("client", c.name).
			Str("url", u).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Err(err).
			Msg("HTTP request failed, retrying")
	}

	resp, err := backoff.RetryNotifyWithData(op, c.policy(ctx), notify)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) policy(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryWait
	eb.MaxInterval = 5 * time.Second
	eb.MaxElapsedTime = 0 // bounded by maxRetries and ctx instead
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.maxRetries)), ctx)
}

func (c *HTTPClient) do(ctx context.Context, u string, attempt int) (*HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	// Set default headers
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("dareboard/%s", c.name))
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug().
		Str("client", c.name).
		Str("method", http.MethodGet).
		Str("url", u).
		Int("attempt", attempt).
		Msg("making HTTP request")

	resp, err := c.client.Do(req)
	if err != nil {
		fe := &apiutil.FetchError{Err: err}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			fe.Timeout = true
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fe)
		}
		return nil, fe
	}

	httpResp, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}
	if httpResp.IsSuccess() {
		return httpResp, nil
	}

	fe := httpResp.fetchError()
	if retryable(httpResp.StatusCode) {
		return nil, fe
	}
	return nil, backoff.Permanent(fe)
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// handleResponse processes the HTTP response
func (c *HTTPClient) handleResponse(resp *http.Response) (*HTTPResponse, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apiutil.FetchError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	log.Debug().
		Str("client", c.name).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(body)).
		Msg("received HTTP response")

	return &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess checks if the response indicates success (2xx status code)
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// errorBody matches the error payloads the API sends: {"message": ...},
// {"error": ...} or both, optionally with a code.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func (r *HTTPResponse) fetchError() *apiutil.FetchError {
	fe := &apiutil.FetchError{Status: r.StatusCode}
	var eb errorBody
	if err := json.Unmarshal(r.Body, &eb); err == nil {
		fe.Code = eb.Code
		fe.Message = eb.Message
		if fe.Message == "" {
			fe.Message = eb.Error
		}
		return fe
	}
	if text := strings.TrimSpace(string(r.Body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		fe.Message = text
	}
	return fe
}
