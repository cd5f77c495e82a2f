// Package fetch retrieves ads.txt and sellers.json documents over HTTP.
// It implements the provider interfaces the validation engine consumes; it
// deliberately has no retry or URL-variant policy.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/sellers"
)

// maxDocumentBytes caps how much of a remote document is read
const maxDocumentBytes = 10 << 20

// Client fetches supply-chain documents from their well-known locations.
type Client struct {
	// HTTPClient performs the requests; it owns all timeout policy
	HTTPClient *http.Client
	// Scheme is https outside of tests
	Scheme string
}

// NewClient creates a Client with the given request timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		Scheme:     "https",
	}
}

// FetchAdsTxt retrieves https://<domain>/ads.txt and wraps it in a
// snapshot. A non-200 response or transport failure yields an error
// snapshot carrying the failure message, not an error return, so callers
// can store the outcome either way.
func (c *Client) FetchAdsTxt(ctx context.Context, domain string) *model.Snapshot {
	snap := &model.Snapshot{
		Domain:    strings.ToLower(strings.TrimSpace(domain)),
		FetchedAt: time.Now().UTC(),
	}

	body, err := c.get(ctx, snap.Domain, "/ads.txt")
	if err != nil {
		snap.Status = model.SnapshotStatusError
		snap.Content = err.Error()
		return snap
	}

	snap.Status = model.SnapshotStatusSuccess
	snap.Content = body
	return snap
}

// GetByDomain retrieves and parses https://<domain>/sellers.json. A 404
// means the ad system publishes no directory: nil directory, nil error.
// Transport failures and malformed documents are returned as errors for
// the cross-validator to degrade into per-record warnings.
func (c *Client) GetByDomain(ctx context.Context, domain string) (*sellers.Directory, error) {
	body, err := c.get(ctx, strings.ToLower(strings.TrimSpace(domain)), "/sellers.json")
	if err != nil {
		if err == errNotFound {
			return nil, nil
		}
		return nil, err
	}
	return sellers.ParseContent(body)
}

var errNotFound = fmt.Errorf("document not found")

func (c *Client) get(ctx context.Context, domain, path string) (string, error) {
	url := c.Scheme + "://" + domain + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	return string(body), nil
}
