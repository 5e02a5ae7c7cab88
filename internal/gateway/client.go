package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-backoffice/internal/logging"
	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

// Route binds a resource to its REST endpoint and calling conventions.
type Route struct {
	// Path is the resource segment appended to the base URL, e.g. "jobs".
	Path string
	// ToggleEndpoint selects the dedicated PATCH /:id/toggle convention over a
	// generic field patch.
	ToggleEndpoint bool
	// PUTFallback enables the best-effort PUT retry for backends that reject
	// partial updates. Only method-level or transport failures trigger it.
	PUTFallback bool
	// BearerToken overrides cookie credentials for resources whose backend
	// expects an Authorization header instead.
	BearerToken string
	// ServerSearch forwards the search text as a query parameter instead of
	// relying on client-side filtering alone.
	ServerSearch bool
}

// Query captures list parameters. Page and PageSize are mandatory bounds;
// Filters travel as plain query parameters.
type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Config wires the client to the backend.
type Config struct {
	// BaseURL is the backend root. Paths are joined with exactly one slash
	// regardless of trailing or leading slashes on either side.
	BaseURL string
	// SessionCookie is forwarded on every request when set (cookie-based
	// admin session).
	SessionCookie string
	// RequestTimeout bounds each round trip when positive. The upstream admin
	// tool ships without one, so the default is off.
	RequestTimeout time.Duration
}

// Option customises the client.
type Option func(*Client)

// WithHTTPDoer injects the transport. Defaults to http.DefaultClient.
func WithHTTPDoer(doer interfaces.HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithLogger injects the gateway logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client issues authenticated REST calls against the back-office API and
// normalizes every failure into the gateway error taxonomy. It never retries;
// retry policy belongs to the caller, and the upstream tool has none.
type Client struct {
	baseURL string
	cookie  string
	timeout time.Duration
	http    interfaces.HTTPDoer
	logger  interfaces.Logger
}

// New validates the configuration and constructs a gateway client.
func New(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, ErrBaseURLRequired
	}
	c := &Client{
		baseURL: strings.TrimRight(base, "/"),
		cookie:  strings.TrimSpace(cfg.SessionCookie),
		timeout: cfg.RequestTimeout,
		http:    http.DefaultClient,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches a page of records for the routed resource.
func (c *Client) List(ctx context.Context, route Route, query Query) (*ListPage, error) {
	if err := validateRoute(route); err != nil {
		return nil, err
	}
	if query.Page < 1 {
		return nil, ErrPageInvalid
	}
	if query.PageSize < 1 {
		return nil, ErrPageSizeInvalid
	}

	endpoint := c.join(route.Path) + "?" + listQueryValues(route, query).Encode()
	status, body, err := c.do(ctx, http.MethodGet, endpoint, route, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, errorFromResponse(route.Path, "", status, body)
	}
	return normalizeListBody(body)
}

// Create posts a new record and returns the server's confirmed copy.
func (c *Client) Create(ctx context.Context, route Route, payload map[string]any) (*Record, error) {
	if err := validateRoute(route); err != nil {
		return nil, err
	}
	status, body, err := c.do(ctx, http.MethodPost, c.join(route.Path), route, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, errorFromResponse(route.Path, "", status, body)
	}
	return decodeRecordBody(body)
}

// Update patches a record. When the route opts into the PUT fallback, a
// method-level or transport failure of the PATCH is retried once as a full
// record PUT built from current merged with patch. Genuine validation
// rejections are never masked by the fallback.
func (c *Client) Update(ctx context.Context, route Route, id string, patch map[string]any, current *Record) (*Record, error) {
	if err := validateRoute(route); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}

	endpoint := c.join(route.Path, id)
	status, body, err := c.do(ctx, http.MethodPatch, endpoint, route, patch)
	if err == nil && status >= 200 && status <= 299 {
		return decodeRecordBody(body)
	}

	if route.PUTFallback && shouldFallBackToPut(status, err) {
		c.logger.Warn("gateway.update.put_fallback", "resource", route.Path, "id", id, "patch_status", status)
		full := mergeForPut(current, patch)
		status, body, err = c.do(ctx, http.MethodPut, endpoint, route, full)
		if err == nil && status >= 200 && status <= 299 {
			return decodeRecordBody(body)
		}
	}

	if err != nil {
		return nil, err
	}
	return nil, errorFromResponse(route.Path, id, status, body)
}

// Toggle flips a boolean field. Routes that expose a dedicated toggle endpoint
// receive PATCH /:resource/:id/toggle; the rest get a generic field patch.
func (c *Client) Toggle(ctx context.Context, route Route, id, field string, value bool) (*Record, error) {
	if err := validateRoute(route); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}

	endpoint := c.join(route.Path, id)
	payload := map[string]any{field: value}
	if route.ToggleEndpoint {
		endpoint = c.join(route.Path, id, "toggle")
		payload = nil
	}

	status, body, err := c.do(ctx, http.MethodPatch, endpoint, route, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, errorFromResponse(route.Path, id, status, body)
	}
	return decodeRecordBody(body)
}

// FetchObject retrieves a singleton resource such as the site settings blob.
// The backend answers with either a bare JSON object or a {data: {...}}
// envelope; both normalize to the inner map.
func (c *Client) FetchObject(ctx context.Context, route Route) (map[string]any, error) {
	if err := validateRoute(route); err != nil {
		return nil, err
	}
	status, body, err := c.do(ctx, http.MethodGet, c.join(route.Path), route, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, errorFromResponse(route.Path, "", status, body)
	}
	return normalizeObjectBody(body)
}

// Remove deletes a record. Removing an id the backend no longer has yields a
// NotFoundError the caller surfaces without treating as fatal.
func (c *Client) Remove(ctx context.Context, route Route, id string) error {
	if err := validateRoute(route); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}

	status, body, err := c.do(ctx, http.MethodDelete, c.join(route.Path, id), route, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return errorFromResponse(route.Path, id, status, body)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, route Route, payload any) (int, []byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("gateway: encode payload: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(route.BearerToken); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	c.logger.Debug("gateway.request", "method", method, "endpoint", endpoint)

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("gateway.request.failed", "method", method, "endpoint", endpoint, "error", err)
		return 0, nil, &RequestError{Message: err.Error()}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, &RequestError{StatusCode: res.StatusCode, Message: err.Error()}
	}
	return res.StatusCode, body, nil
}

// join builds an endpoint from the base URL and path segments with exactly one
// slash between each part.
func (c *Client) join(parts ...string) string {
	builder := strings.Builder{}
	builder.WriteString(c.baseURL)
	for _, part := range parts {
		trimmed := strings.Trim(strings.TrimSpace(part), "/")
		if trimmed == "" {
			continue
		}
		builder.WriteByte('/')
		builder.WriteString(trimmed)
	}
	return builder.String()
}

func validateRoute(route Route) error {
	if strings.TrimSpace(route.Path) == "" {
		return ErrPathRequired
	}
	return nil
}

func listQueryValues(route Route, query Query) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(query.Page))
	values.Set("limit", strconv.Itoa(query.PageSize))
	if route.ServerSearch {
		if search := strings.TrimSpace(query.Search); search != "" {
			values.Set("search", search)
		}
	}
	for key, value := range query.Filters {
		if key == "" || value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values
}

func shouldFallBackToPut(status int, err error) bool {
	if err != nil {
		var reqErr *RequestError
		// Transport-level failure: the request never produced a status code.
		return errors.As(err, &reqErr) && reqErr.StatusCode == 0
	}
	return status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented
}

func mergeForPut(current *Record, patch map[string]any) map[string]any {
	merged := map[string]any{}
	if current != nil {
		encoded, err := json.Marshal(current)
		if err == nil {
			_ = json.Unmarshal(encoded, &merged)
		}
	}
	for key, value := range patch {
		merged[key] = value
	}
	return merged
}
