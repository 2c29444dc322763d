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

	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/logging"
	"github.com/dmitrijs2005/lostfound/internal/netx"
	"github.com/google/uuid"
)

// Envelope is the body shape of every backend answer.
type Envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
}

// DecodeData unmarshals the data member into v. A missing or null data
// member leaves v untouched.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 || bytes.Equal(bytes.TrimSpace(e.Data), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

type Option func(*RESTClient)

func WithHTTPClient(h *http.Client) Option {
	return func(c *RESTClient) { c.http = h }
}

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *RESTClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *RESTClient) { c.log = l }
}

// WithUnauthorizedHook installs fn to run after a 401 cleared the session.
// Surfaces use it to move the user to the login view.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *RESTClient) { c.onUnauthorized = fn }
}

func WithRequestIDGenerator(fn func() string) Option {
	return func(c *RESTClient) { c.newRequestID = fn }
}

// RESTClient implements Client over HTTP. It is safe for concurrent use.
type RESTClient struct {
	baseURL        string
	http           *http.Client
	tokens         TokenStore
	log            logging.Logger
	onUnauthorized func(ctx context.Context)
	newRequestID   func() string
}

func New(baseURL string, tokens TokenStore, opts ...Option) *RESTClient {
	c := &RESTClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{},
		tokens:       tokens,
		log:          logging.Discard(),
		newRequestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get performs a GET request.
func (c *RESTClient) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil, "")
}

// PostJSON performs a POST request with v encoded as JSON.
func (c *RESTClient) PostJSON(ctx context.Context, path string, v any) (*Envelope, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json")
}

// PostMultipart performs a POST request with a multipart/form-data body.
func (c *RESTClient) PostMultipart(ctx context.Context, path string, form *netx.Form) (*Envelope, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, body, contentType)
}

func (c *RESTClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*Envelope, error) {
	url := c.baseURL + path
	reqID := c.newRequestID()
	log := c.log.With("request_id", reqID, "method", method, "path", path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(ctx, req, log)

	log.Debug(ctx, "http request")
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		log.Warn(ctx, "http request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	log.Debug(ctx, "http response", "status", resp.StatusCode, "elapsed", time.Since(started))

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message}
		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized(ctx, log)
		}
		return nil, apiErr
	}
	if decodeErr != nil && len(bytes.TrimSpace(raw)) > 0 {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, decodeErr)
	}
	return &env, nil
}

func (c *RESTClient) authorize(ctx context.Context, req *http.Request, log logging.Logger) {
	if c.tokens == nil {
		return
	}
	token, ok, err := c.tokens.Token(ctx)
	if err != nil {
		log.Warn(ctx, "read session token", "error", err)
		return
	}
	if ok {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}
}

// unauthorized drops the session even when ctx is already cancelled.
func (c *RESTClient) unauthorized(ctx context.Context, log logging.Logger) {
	ctx = context.WithoutCancel(ctx)
	if c.tokens != nil {
		if err := c.tokens.Clear(ctx); err != nil {
			log.Error(ctx, "clear session after 401", "error", err)
		}
	}
	log.Info(ctx, "session rejected by server")
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}

// IsCanceled reports whether err comes from a cancelled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
