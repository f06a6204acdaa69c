// Package linkcheck verifies that a download URL actually resolves
// before an entry is admitted to the catalog. The check is optional
// and enabled via configuration.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultRetryMax     = 2
	defaultRetryWaitMin = 200 * time.Millisecond
	defaultRetryWaitMax = 2 * time.Second
	defaultTimeout      = 10 * time.Second
)

// Checker performs bounded-retry HEAD requests against download URLs.
type Checker struct {
	client *retryablehttp.Client
}

// New creates a checker with conservative retry settings. Transient
// connection failures are retried; HTTP error statuses are not.
func New() *Checker {
	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetryMax
	client.RetryWaitMin = defaultRetryWaitMin
	client.RetryWaitMax = defaultRetryWaitMax
	client.HTTPClient.Timeout = defaultTimeout
	client.Logger = nil // Disable retryablehttp logging
	return &Checker{client: client}
}

// Check issues a HEAD request and reports an error when the URL does
// not resolve or answers with a client/server error status.
func (c *Checker) Check(ctx context.Context, url string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("invalid download url: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("download url unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("download url answered with status %d", resp.StatusCode)
	}
	return nil
}
