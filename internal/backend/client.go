// internal/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

var (
	ErrUnauthorized = errors.New("backend rejected credentials")
	ErrBadResponse  = errors.New("unexpected backend response")
)

// Error is a failed backend call. Message holds the server-supplied text, if any.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("backend error (%d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("backend error (%d)", e.StatusCode)
}

func (e *Error) Unwrap() error { return e.Err }

// MessageOf returns the server message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var be *Error
	if errors.As(err, &be) && strings.TrimSpace(be.Message) != "" {
		return be.Message
	}
	return fallback
}

// Response is a successful backend reply. Data is the unwrapped payload:
// the "data" member of an envelope, or the whole body when it is not an envelope.
type Response struct {
	StatusCode int
	Message    string
	Data       json.RawMessage
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token; every call made with the
// returned context forwards it to the backend.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	if t, ok := ctx.Value(tokenKey{}).(string); ok {
		return t
	}
	return ""
}

// Do sends body as JSON and decodes the reply. Only 200 and 201 count as
// success, both for the HTTP status and for a numeric "status" in the body.
func (c *Client) Do(ctx context.Context, method, endpoint string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("❌ [Backend] %s %s: %v", method, endpoint, err)
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	env := parseEnvelope(raw)

	if resp.StatusCode == http.StatusUnauthorized {
		log.Printf("⚠️ [Backend] %s %s: unauthorized", method, endpoint)
		return nil, &Error{StatusCode: resp.StatusCode, Message: env.message, Err: ErrUnauthorized}
	}
	if !isSuccess(resp.StatusCode) {
		log.Printf("❌ [Backend] %s %s: status %d", method, endpoint, resp.StatusCode)
		return nil, &Error{StatusCode: resp.StatusCode, Message: env.message, Err: ErrBadResponse}
	}
	if env.hasStatus && !isSuccess(env.status) {
		log.Printf("❌ [Backend] %s %s: body status %d", method, endpoint, env.status)
		return nil, &Error{StatusCode: env.status, Message: env.message, Err: ErrBadResponse}
	}

	return &Response{StatusCode: resp.StatusCode, Message: env.message, Data: env.data}, nil
}

func isSuccess(code int) bool {
	return code == http.StatusOK || code == http.StatusCreated
}

type envelope struct {
	hasStatus bool
	status    int
	message   string
	data      json.RawMessage
}

func parseEnvelope(raw []byte) envelope {
	env := envelope{data: raw}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return env
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return env
	}

	if s, ok := obj["status"]; ok {
		var n float64
		if json.Unmarshal(s, &n) == nil {
			env.hasStatus = true
			env.status = int(n)
		}
	}
	for _, key := range []string{"message", "error", "msg"} {
		if m, ok := obj[key]; ok {
			var text string
			if json.Unmarshal(m, &text) == nil && text != "" {
				env.message = text
				break
			}
		}
	}
	if d, ok := obj["data"]; ok {
		env.data = d
	} else if env.hasStatus {
		// {status, message} carries no payload.
		env.data = nil
	}
	return env
}

// Records decodes Data as a list of loosely-typed records. A single object
// is returned as a one-element list; null yields an empty list.
func (r *Response) Records() ([]map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(r.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []map[string]interface{}{}, nil
	}
	if trimmed[0] == '{' {
		var one map[string]interface{}
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}
		return []map[string]interface{}{one}, nil
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	return list, nil
}

// Value decodes Data into a generic value.
func (r *Response) Value() (interface{}, error) {
	if len(bytes.TrimSpace(r.Data)) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(r.Data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse response data: %w", err)
	}
	return v, nil
}
