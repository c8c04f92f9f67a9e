// Package client is a generic CRUD façade over the bills API: named
// collections addressed under a base URL, JSON-or-fail decoding, and a
// bearer token attached from session storage on every call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/billed-app/billed/internal/session"
	"go.uber.org/zap"
)

// APIError is returned for any non-2xx response. Its message is taken
// verbatim from the JSON error body's "message" field.
type APIError struct {
	StatusCode int
	Message    string
}

// Error returns the server-provided message.
func (e *APIError) Error() string {
	return e.Message
}

// Api issues HTTP verbs against a base URL. It never interprets
// payloads beyond JSON decoding; collection semantics live in Resource.
type Api struct {
	baseURL    string
	httpClient *http.Client
	storage    session.Storage
	logger     *zap.Logger
}

// NewApi creates an Api rooted at baseURL. The bearer token is read
// from storage at the moment each call runs, not cached.
func NewApi(baseURL string, storage session.Storage, logger *zap.Logger) *Api {
	return &Api{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		storage:    storage,
		logger:     logger,
	}
}

// Resource returns a CRUD handle for the named collection.
func (a *Api) Resource(key string) *Resource {
	return &Resource{key: key, api: a}
}

// Bills returns the bills collection.
func (a *Api) Bills() *Resource {
	return a.Resource("bills")
}

// Users returns the users collection.
func (a *Api) Users() *Resource {
	return a.Resource("users")
}

// LoginResponse is the body returned by the login endpoint.
type LoginResponse struct {
	JWT string `json:"jwt"`
}

// Login exchanges credentials for a bearer token and stores it in
// session storage under the jwt key.
func (a *Api) Login(ctx context.Context, email, password string) (string, error) {
	credentials := map[string]string{"email": email, "password": password}

	var resp LoginResponse
	err := a.do(ctx, http.MethodPost, "/auth/login", credentials, &resp, WithoutAuthorization())
	if err != nil {
		return "", err
	}

	a.storage.Set(session.KeyJWT, resp.JWT)
	return resp.JWT, nil
}

type callOptions struct {
	noContentType   bool
	noAuthorization bool
}

// CallOption customizes header construction for a single call.
type CallOption func(*callOptions)

// WithoutContentType suppresses the default application/json header.
// Multipart payloads set it automatically regardless.
func WithoutContentType() CallOption {
	return func(o *callOptions) { o.noContentType = true }
}

// WithoutAuthorization suppresses the bearer token header.
func WithoutAuthorization() CallOption {
	return func(o *callOptions) { o.noAuthorization = true }
}

// do executes one HTTP call. data may be nil (no body), a *FormData
// (multipart encoding with its own content type), or any JSON-encodable
// value. A non-nil out receives the decoded JSON response body.
func (a *Api) do(ctx context.Context, method, path string, data any, out any, opts ...CallOption) error {
	options := callOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var body io.Reader
	contentType := ""
	switch payload := data.(type) {
	case nil:
	case *FormData:
		encoded, boundary, err := payload.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode multipart body: %w", err)
		}
		body = encoded
		contentType = boundary
	default:
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		if !options.noContentType {
			contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !options.noAuthorization {
		if token := session.Token(a.storage); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr != nil {
			return fmt.Errorf("failed to decode error body (status %d): %w", resp.StatusCode, decodeErr)
		}
		a.logger.Debug("API call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", errBody.Message))
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
