package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the Admin API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// accessTokenHeader carries the per-shop credential on every request
const accessTokenHeader = "X-Shopify-Access-Token"

// Client implements integration.CatalogClient against the Shopify Admin
// REST API. Pagination uses the opaque page_info token from the Link
// response header; 429 and 5xx responses are retried with exponential
// backoff before surfacing a transient error.
type Client struct {
	cfg        config.ShopifyConfig
	httpClient *http.Client

	// baseURL overrides the per-shop https://{domain} base when set.
	// Used by tests to point the client at a local server.
	baseURL string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API base URL for all shops
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Shopify Admin API client
func NewClient(cfg config.ShopifyConfig, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifyShop checks that the credentials can reach the shop profile
func (c *Client) VerifyShop(ctx context.Context, creds integration.Credentials) (*integration.ShopInfo, error) {
	body, _, err := c.doRequest(ctx, creds, "shop.json", nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Shop struct {
			Name     string `json:"name"`
			Domain   string `json:"myshopify_domain"`
			Currency string `json:"currency"`
			Email    string `json:"email"`
		} `json:"shop"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	return &integration.ShopInfo{
		Name:     envelope.Shop.Name,
		Domain:   envelope.Shop.Domain,
		Currency: envelope.Shop.Currency,
		Email:    envelope.Shop.Email,
	}, nil
}

// FetchPage retrieves one page of records of the given kind. An empty
// cursor requests the first page; the returned cursor is empty once the
// listing is exhausted.
func (c *Client) FetchPage(ctx context.Context, creds integration.Credentials, kind integration.EntityKind, cursor string, limit int) (*integration.Page, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", integration.ErrInvalidResponse, kind)
	}
	if limit < 1 || limit > integration.MaxPageSize {
		limit = integration.MaxPageSize
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		// A page_info request tolerates no filter params besides limit
		params.Set("page_info", cursor)
	} else if kind == integration.KindOrder {
		// Without status=any the API hides closed and cancelled orders
		params.Set("status", "any")
	}

	body, header, err := c.doRequest(ctx, creds, kind.String()+".json", params)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	raw, ok := envelope[kind.String()]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key", integration.ErrInvalidResponse, kind)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	return &integration.Page{
		Records:    records,
		NextCursor: extractNextCursor(header.Get("Link")),
	}, nil
}

// doRequest performs a GET against the Admin API with retries. Returns the
// response body and headers of the successful attempt.
func (c *Client) doRequest(ctx context.Context, creds integration.Credentials, path string, params url.Values) ([]byte, http.Header, error) {
	endpoint := c.endpoint(creds, path)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.RetryBaseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, nil, err
		}
		req.Header.Set(accessTokenHeader, creds.AccessToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %v", integration.ErrUnavailable, err)
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, readErr)
			}
			return body, resp.Header, nil
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, nil, fmt.Errorf("%w: HTTP %d", integration.ErrAuthFailed, resp.StatusCode)
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("%w: HTTP %d", integration.ErrRateLimited, resp.StatusCode)
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("%w: HTTP %d", integration.ErrUnavailable, resp.StatusCode)
		default:
			return nil, nil, fmt.Errorf("%w: HTTP %d", integration.ErrInvalidResponse, resp.StatusCode)
		}
	}

	if lastErr == nil {
		lastErr = integration.ErrUnavailable
	}
	return nil, nil, lastErr
}

func (c *Client) endpoint(creds integration.Credentials, path string) string {
	base := c.baseURL
	if base == "" {
		base = "https://" + creds.ShopDomain
	}
	return fmt.Sprintf("%s/admin/api/%s/%s", base, c.cfg.APIVersion, path)
}

// extractNextCursor pulls the page_info token of the rel="next" link out
// of a Link response header. Returns "" when there is no next page.
func extractNextCursor(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}

	for _, part := range strings.Split(linkHeader, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start == -1 || end == -1 || end <= start {
			continue
		}
		u, err := url.Parse(part[start+1 : end])
		if err != nil {
			continue
		}
		return u.Query().Get("page_info")
	}
	return ""
}

// IsAuthError reports whether the error is a permanent credential failure
func IsAuthError(err error) bool {
	return errors.Is(err, integration.ErrAuthFailed)
}

var _ integration.CatalogClient = (*Client)(nil)
