package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-backoffice/internal/logging"
	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

var (
	ErrAPIKeyRequired = errors.New("uploader: api key is required")
	ErrUploadRejected = errors.New("uploader: host rejected upload")
)

// DefaultEndpoint is the ImgBB upload URL. Overridable for tests and
// compatible hosts.
const DefaultEndpoint = "https://api.imgbb.com/1/upload"

// UploadError reports a third-party host failure. It is deliberately a
// different kind from the gateway taxonomy: the remediation is configuration
// (key, file size, file type), not a retry against the backend.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	if e == nil || strings.TrimSpace(e.Reason) == "" {
		return ErrUploadRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUploadRejected.Error(), e.Reason)
}

func (e *UploadError) Unwrap() error {
	return ErrUploadRejected
}

// Config wires the image host client.
type Config struct {
	APIKey   string
	Endpoint string
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

// WithLogger injects the uploader logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client pushes image blobs to an ImgBB-compatible host via multipart POST and
// returns the hosted URL. No retries: a rejection means the key or the file is
// wrong, and retrying cannot fix either.
type Client struct {
	apiKey   string
	endpoint string
	http     interfaces.HTTPDoer
	logger   interfaces.Logger
}

var _ interfaces.Uploader = (*Client)(nil)

// New validates configuration and constructs an upload client.
func New(cfg Config, opts ...Option) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrAPIKeyRequired
	}
	c := &Client{
		apiKey:   key,
		endpoint: strings.TrimSpace(cfg.Endpoint),
		http:     http.DefaultClient,
		logger:   logging.NoOp(),
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL       string `json:"url"`
		DeleteURL string `json:"delete_url"`
		Thumb     struct {
			URL string `json:"url"`
		} `json:"thumb"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the blob as the multipart form field "image" and returns the
// hosted asset URLs.
func (c *Client) Upload(ctx context.Context, name string, body io.Reader) (*interfaces.UploadResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("image", name)
	if err != nil {
		return nil, fmt.Errorf("uploader: build form: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return nil, fmt.Errorf("uploader: read blob: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("uploader: close form: %w", err)
	}

	endpoint := c.endpoint + "?" + url.Values{"key": {c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, buf)
	if err != nil {
		return nil, fmt.Errorf("uploader: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Debug("uploader.request", "name", name)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &UploadError{Reason: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &UploadError{Reason: err.Error()}
	}

	parsed := uploadResponse{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &UploadError{Reason: fmt.Sprintf("unparseable host response (status %d)", res.StatusCode)}
	}
	if !parsed.Success || parsed.Data.URL == "" {
		reason := fmt.Sprintf("status %d", res.StatusCode)
		if parsed.Error != nil && strings.TrimSpace(parsed.Error.Message) != "" {
			reason = parsed.Error.Message
		}
		c.logger.Error("uploader.rejected", "name", name, "reason", reason)
		return nil, &UploadError{Reason: reason}
	}

	c.logger.Info("uploader.stored", "name", name, "url", parsed.Data.URL)
	return &interfaces.UploadResult{
		URL:          parsed.Data.URL,
		DeleteURL:    parsed.Data.DeleteURL,
		ThumbnailURL: parsed.Data.Thumb.URL,
	}, nil
}
