package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/studiowebux/catalog/internal/types"
	"go.uber.org/zap"
)

// ProductsPath is the collection path relative to the API base URL
const ProductsPath = "/api/products"

// ErrEmptyID is returned by Get when the id is blank after trimming
var ErrEmptyID = errors.New("product id is required")

// StatusError reports a non-2xx response
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

// Recorder receives one entry per completed call (the activity log)
type Recorder interface {
	Record(ctx context.Context, call types.Call) error
}

// Client talks to the products API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	recorder   Recorder
	timeout    time.Duration
	tlsConfig  *types.TLSConfig
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRecorder records every call
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithTimeout bounds each call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTLS configures TLS/mTLS for the transport
func WithTLS(cfg *types.TLSConfig) Option {
	return func(c *Client) { c.tlsConfig = cfg }
}

// WithHTTPClient replaces the transport entirely (tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		hc, err := buildHTTPClient(c.tlsConfig, c.timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
		}
		c.httpClient = hc
	}

	return c, nil
}

// BaseURL returns the API root this client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns every product
func (c *Client) List(ctx context.Context) ([]types.Product, error) {
	var products []types.Product
	if err := c.do(ctx, "list products", http.MethodGet, ProductsPath, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []types.Product{}
	}
	return products, nil
}

// Get fetches one product. id is the raw search input; surrounding
// whitespace is ignored.
func (c *Client) Get(ctx context.Context, id string) (*types.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}

	var product types.Product
	if err := c.do(ctx, "get product", http.MethodGet, productPath(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create adds a product and returns it as stored by the server
func (c *Client) Create(ctx context.Context, in types.ProductInput) (*types.Product, error) {
	var product types.Product
	if err := c.do(ctx, "create product", http.MethodPost, ProductsPath, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces the fields of product id
func (c *Client) Update(ctx context.Context, id int64, in types.ProductInput) (*types.Product, error) {
	var product types.Product
	path := productPath(strconv.FormatInt(id, 10))
	if err := c.do(ctx, "update product", http.MethodPut, path, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes product id. Any response body is ignored.
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := productPath(strconv.FormatInt(id, 10))
	return c.do(ctx, "delete product", http.MethodDelete, path, nil, nil)
}

func productPath(id string) string {
	return ProductsPath + "/" + url.PathEscape(id)
}

// do performs one call, decoding a 2xx body into out when out is non-nil
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	startTime := time.Now()

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode body: %w", op, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		c.record(ctx, method, path, 0, duration, err)
		c.logger.Error("request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if !IsSuccessStatus(resp.StatusCode) {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		statusErr := &StatusError{Op: op, Status: resp.StatusCode}
		c.record(ctx, method, path, resp.StatusCode, duration, statusErr)
		c.logger.Warn("unexpected status",
			zap.String("op", op),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return statusErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			decodeErr := fmt.Errorf("%s: failed to decode response: %w", op, err)
			c.record(ctx, method, path, resp.StatusCode, duration, decodeErr)
			c.logger.Error("decode failed", zap.String("op", op), zap.Error(err))
			return decodeErr
		}
	}

	c.record(ctx, method, path, resp.StatusCode, duration, nil)
	c.logger.Debug("request completed",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("duration", FormatDuration(duration.Milliseconds())),
	)
	return nil
}

func (c *Client) record(ctx context.Context, method, path string, status int, duration time.Duration, callErr error) {
	if c.recorder == nil {
		return
	}

	call := types.Call{
		Timestamp:  time.Now(),
		Method:     method,
		Path:       path,
		Status:     status,
		DurationMs: duration.Milliseconds(),
	}
	if callErr != nil {
		call.Error = callErr.Error()
	}

	// The activity log is best-effort; a canceled call still gets recorded
	if err := c.recorder.Record(context.WithoutCancel(ctx), call); err != nil {
		c.logger.Warn("failed to record call", zap.Error(err))
	}
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration
func buildHTTPClient(tlsConfig *types.TLSConfig, timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}

	if tlsConfig != nil {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: tlsConfig.InsecureSkipVerify,
		}

		// Load client certificate if provided (for mTLS)
		if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		// Load CA certificate if provided (for server verification)
		if tlsConfig.CAFile != "" {
			caCert, err := os.ReadFile(tlsConfig.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
