package catalog

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// Compile-time check ensuring Client satisfies Source.
var _ Source = (*Client)(nil)

// maxBodySize caps catalog responses at 8 MiB. The upstream catalog is small;
// anything larger is a broken or hostile response.
const maxBodySize = 8 << 20

// ClientConfig holds the static configuration of the remote catalog API.
// Base URL and credential are fixed deployment settings, not user input.
type ClientConfig struct {
	// BaseURL is the API root, e.g. https://recruitment-spe.vercel.app/api/v1.
	BaseURL string
	// Token is the bearer credential sent on every request.
	Token string
	// Timeout bounds a single catalog request. Zero means 10s.
	Timeout time.Duration
	// TracerProvider instruments outgoing requests. Nil disables tracing.
	TracerProvider trace.TracerProvider
}

// Client fetches products from the remote catalog over HTTP.
//
// Concurrent ListProducts calls are collapsed into a single outstanding
// request via singleflight, so several sessions opening at once share one
// upstream fetch.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	sf      singleflight.Group
}

// NewClient builds a Client from the given configuration.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := []otelhttp.Option{otelhttp.WithSpanNameFormatter(
		func(_ string, r *http.Request) string { return "catalog " + r.Method },
	)}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(cfg.TracerProvider))
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport, opts...),
		},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
	}
}

// ListProducts fetches the full catalog. Any transport or decoding failure
// surfaces as a generic fetch error; callers recover by falling back to an
// empty snapshot.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	v, err, _ := c.sf.Do("list", func() (any, error) {
		body, err := c.get(ctx, c.baseURL+"/products")
		if err != nil {
			return nil, err
		}
		return decodeProducts(body)
	})
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return v.([]Product), nil
}

// GetProduct fetches a single product by ID. Part of the upstream contract,
// unused by the session flow which resolves against its own snapshot.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	body, err := c.get(ctx, c.baseURL+"/products/"+id)
	if err != nil {
		return nil, errors.Wrapf(err, "get product %q", id)
	}
	p, err := decodeProduct(jx.DecodeBytes(body))
	if err != nil {
		return nil, errors.Wrapf(err, "get product %q", id)
	}
	return &p, nil
}

// get performs an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	return body, nil
}
