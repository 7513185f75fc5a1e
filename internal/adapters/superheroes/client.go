// Package superheroes is the HTTP client of the remote superheroes API.
//
// Each call is a single round trip: no retries, no auth header, no paging.
package superheroes

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

	"github.com/okian/heroes/internal/domain/hero"
	"github.com/okian/heroes/pkg/logger"
	"github.com/okian/heroes/pkg/metrics"
)

// DefaultBaseURL is the collection endpoint used when none is configured.
const DefaultBaseURL = "http://localhost:3000/superheroes"

const maxErrorBody = 64 << 10

// Client talks to one superheroes collection endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the collection endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout bounds every round trip. Zero keeps the client default (none).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for call tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the collection endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches every hero, in the order the API returns them.
func (c *Client) List(ctx context.Context) ([]hero.Hero, error) {
	const op = "list"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("superheroes %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	var out []hero.Hero
	if err := c.do(ctx, op, req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []hero.Hero{}
	}
	return out, nil
}

// Create posts a draft and returns the record echoed by the API.
func (c *Client) Create(ctx context.Context, d hero.Draft) (hero.Hero, error) {
	const op = "create"
	body, err := json.Marshal(d)
	if err != nil {
		return hero.Hero{}, fmt.Errorf("superheroes %s: marshal draft: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return hero.Hero{}, fmt.Errorf("superheroes %s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var out hero.Hero
	if err := c.do(ctx, op, req, &out); err != nil {
		return hero.Hero{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op string, req *http.Request, out any) error {
	start := time.Now()
	err := c.roundTrip(op, req, out)
	elapsed := time.Since(start)

	metrics.RecordUpstreamCall(op, outcome(err), float64(elapsed.Milliseconds()))
	if c.log != nil {
		if err != nil {
			c.log.Warn(ctx, "superheroes call failed", logger.String("op", op), logger.Duration("took", elapsed), logger.Error(err))
		} else {
			c.log.Debug(ctx, "superheroes call done", logger.String("op", op), logger.Duration("took", elapsed))
		}
	}
	return err
}

func (c *Client) roundTrip(op string, req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Op: op, Kind: KindTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// statusError decodes the optional {"message": "..."} body of a failed call.
func statusError(op string, resp *http.Response) *APIError {
	e := &APIError{Op: op, Kind: KindStatus, Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return e
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return e
	}
	e.HasBody = true
	if msg, ok := body["message"]; ok {
		e.Message = decodeMessage(msg)
	}
	return e
}

// decodeMessage accepts a string or, as validation pipes often send, a list of strings.
func decodeMessage(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return metrics.OutcomeTransport
	}
	switch apiErr.Kind {
	case KindStatus:
		return metrics.OutcomeStatus
	case KindDecode:
		return metrics.OutcomeDecode
	default:
		return metrics.OutcomeTransport
	}
}
