package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ashfall-game/survival-client/pkg/metrics"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TokenSource supplies the current session credential. The client attaches it
// as a bearer authorization header on every request.
type TokenSource func(ctx context.Context) (string, error)

// Error is a non-2xx response from the game API. Status drives the error
// taxonomy: 401 is session-terminal, other 4xx are business failures, 5xx are
// transient.
type Error struct {
	Status   int
	Message  string
	Endpoint string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s: %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s: %d", e.Endpoint, e.Status)
}

// IsAuth reports whether err is an authentication failure (HTTP 401).
func IsAuth(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsBusiness reports whether err is a validation/business failure (4xx other
// than 401).
func IsBusiness(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Status != http.StatusUnauthorized
}

// ServerMessage extracts the server-provided error message, if any.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// Client talks to the remote game API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

// NewClient creates a game API client.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		logger: logger,
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do sends one JSON request and decodes the response into out. Every failure
// is classified before it is returned: non-2xx statuses become *Error,
// transport failures are wrapped.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	url := c.baseURL + path

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	token, err := c.tokens(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read session token")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(path, "network_error").Inc()
		return errors.Wrapf(err, "request to %s failed", path)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var serverErr errorBody
		_ = json.NewDecoder(resp.Body).Decode(&serverErr)
		message := serverErr.Error
		if message == "" {
			message = serverErr.Message
		}
		c.logger.Debug("api request failed",
			zap.String("endpoint", path),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("server_message", message),
		)
		return &Error{Status: resp.StatusCode, Message: message, Endpoint: path}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", path)
	}
	return nil
}
