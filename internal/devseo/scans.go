package devseo

import (
	"context"
	"net/http"
	"net/url"

	"github.com/devseo/dashboard-gateway/internal/seo"
)

// StartScanResult acknowledges a queued scan.
type StartScanResult struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type startScanPayload struct {
	WebsiteID string `json:"website_id"`
	MaxPages  int    `json:"max_pages"`
}

// ListScans returns scans, optionally filtered to one website.
func (c *Client) ListScans(ctx context.Context, websiteID string) ([]seo.Scan, error) {
	var query url.Values
	if websiteID != "" {
		query = url.Values{"website_id": []string{websiteID}}
	}
	var out []seo.Scan
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/crawls", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetScanReport fetches one scan with its report detail. For scans that are
// not yet completed the report fields are empty and only the lifecycle state
// is meaningful.
func (c *Client) GetScanReport(ctx context.Context, id string) (seo.ScanReport, error) {
	var out seo.ScanReport
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/crawls/"+id, nil, nil, &out); err != nil {
		return seo.ScanReport{}, err
	}
	return out, nil
}

// StartScan queues a new crawl for the website. maxPages must be positive;
// the server remains authoritative and may cap it further.
func (c *Client) StartScan(ctx context.Context, websiteID string, maxPages int) (StartScanResult, error) {
	if maxPages <= 0 {
		return StartScanResult{}, ErrInvalidMaxPages
	}
	var out StartScanResult
	payload := startScanPayload{WebsiteID: websiteID, MaxPages: maxPages}
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/crawls", nil, payload, &out); err != nil {
		return StartScanResult{}, err
	}
	return out, nil
}

// ScanPages fetches the per-page crawl results for a scan.
func (c *Client) ScanPages(ctx context.Context, id string) ([]seo.PageResult, error) {
	var out []seo.PageResult
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/crawls/"+id+"/pages", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
