package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lttslabs/etlctl/internal/shared"
	"golang.org/x/time/rate"
)

// requestTimeout is the fixed transport timeout. An in-flight call past
// this duration is treated as a transport failure; there are no retries.
const requestTimeout = 30 * time.Second

// TokenSource provides the credential and locale attached to every
// outgoing request. Implemented by [session.Session].
type TokenSource interface {
	Token() string
	Language() string
}

// Notifier is the user-facing notification channel. Fire-and-forget; the
// client never retries or queues notifications.
type Notifier interface {
	Error(message string)
}

// Options configures optional Client collaborators.
type Options struct {
	// HTTPClient overrides the default transport (30s timeout).
	HTTPClient *http.Client
	// Notifier receives user-visible error messages. Nil disables display.
	Notifier Notifier
	// OnAuthExpired runs after an expired-session notification has been
	// emitted. Implementations clear the session and navigate to the
	// login route; both must be idempotent since concurrent requests can
	// each detect expiry independently.
	OnAuthExpired func()
	// RateLimit throttles outgoing calls (requests per second). Zero
	// disables throttling.
	RateLimit float64
	Logger    *log.Logger
}

// Client wraps the transport with a request-decoration stage and a
// response-classification stage. Endpoint wrappers call [Client.Post] and
// [Client.Upload]; they never touch headers or envelopes themselves.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	session       TokenSource
	notifier      Notifier
	onAuthExpired func()
	limiter       *rate.Limiter
	logger        *log.Logger
}

// NewClient creates a Client for the backend at baseURL, decorating every
// request from sess.
func NewClient(baseURL string, sess TokenSource, opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: requestTimeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		baseURL:       baseURL,
		httpClient:    opts.HTTPClient,
		session:       sess,
		notifier:      opts.Notifier,
		onAuthExpired: opts.OnAuthExpired,
		limiter:       limiter,
		logger:        opts.Logger,
	}
}

// Post sends body as JSON to path and classifies the response. On success
// the envelope is returned and its data payload is decoded into out (when
// out is non-nil). A nil body sends an empty JSON object.
func (c *Client) Post(ctx context.Context, path string, body any, out any) (*Envelope, error) {
	payload := []byte("{}")
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// Upload sends a multipart form with a single file field to path and
// classifies the response like [Client.Post].
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) (*Envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to build form: %v", err)}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to read upload: %v", err)}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to finish form: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, out)
}

// decorate attaches credentials and locale to an outgoing request. It
// never fails: without a session the request goes out with no auth header.
// A logout racing an in-flight call at worst sends a now-stale token once.
func (c *Client) decorate(req *http.Request) {
	language := ""
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", token)
		}
		language = c.session.Language()
	}
	req.Header.Set("Accept-Language", language)
	req.Header.Set("X-Request-Id", shared.GenerateID())
}

// do runs the decorated request through the transport and classifies the
// outcome. Every failure is returned as an *Error; do never panics.
func (c *Client) do(req *http.Request, out any) (*Envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, &Error{Kind: KindTransport, Message: err.Error()}
		}
	}

	c.decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("request failed", "path", req.URL.Path, "error", err)
		}
		apiErr := &Error{Kind: KindTransport, Message: err.Error()}
		c.notify(apiErr.Message)
		return nil, apiErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := &Error{Kind: KindTransport, Status: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
		c.notify(apiErr.Message)
		return nil, apiErr
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return c.classifySuccess(resp.StatusCode, body, out)
	}
	return nil, c.classifyFailure(resp.StatusCode, body)
}

// classifySuccess handles the transport-success path: an envelope-shaped
// body is classified by its code; anything else passes through unchanged,
// since not every endpoint uses the envelope convention.
func (c *Client) classifySuccess(status int, body []byte, out any) (*Envelope, error) {
	env, ok := decodeEnvelope(body)
	if !ok {
		if out != nil && len(body) > 0 {
			if err := json.Unmarshal(body, out); err != nil {
				return nil, &Error{Kind: KindTransport, Status: status, Message: fmt.Sprintf("failed to decode response: %v", err)}
			}
		}
		return &Envelope{Code: 0, Data: body}, nil
	}

	switch Classify(env.Code) {
	case ClassSuccess:
		if out != nil && len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, out); err != nil {
				return nil, &Error{Kind: KindTransport, Status: status, Message: fmt.Sprintf("failed to decode response data: %v", err)}
			}
		}
		return env, nil

	case ClassAuthExpired:
		c.expireSession()
		return nil, &Error{Kind: KindAuthExpired, Code: env.Code, Status: status, Message: messageOr(env.Message, defaultFailureMessage)}

	default:
		msg := messageOr(env.Message, defaultFailureMessage)
		c.notify(msg)
		return nil, &Error{Kind: KindBusiness, Code: env.Code, Status: status, Message: msg}
	}
}

// classifyFailure handles the transport-failure path (non-2xx). The
// backend delivers business envelopes with HTTP 400, so a partial envelope
// is still extracted and its code honored; the auth-expired decision is
// the union of the status and body-code checks.
func (c *Client) classifyFailure(status int, body []byte) error {
	env, ok := decodeEnvelope(body)

	code := 0
	if ok {
		code = env.Code
	}

	if authExpiredStatus(status) || (ok && Classify(code) == ClassAuthExpired) {
		c.expireSession()
		return &Error{Kind: KindAuthExpired, Code: code, Status: status, Message: expiredSessionMessage}
	}

	kind := KindTransport
	msg := fmt.Sprintf("%s: status %d", defaultFailureMessage, status)
	if ok {
		kind = KindBusiness
		msg = messageOr(env.Message, msg)
	}
	c.notify(msg)
	return &Error{Kind: kind, Code: code, Status: status, Message: msg}
}

// expireSession emits the expired-session notification and invokes the
// auth-expiry hook. Runs at most once per originating request: the
// success and failure classifiers are mutually exclusive.
func (c *Client) expireSession() {
	c.notify(expiredSessionMessage)
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}

func (c *Client) notify(message string) {
	if c.notifier != nil {
		c.notifier.Error(message)
	}
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
