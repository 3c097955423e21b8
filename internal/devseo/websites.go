package devseo

import (
	"context"
	"net/http"
	"strings"

	"github.com/devseo/dashboard-gateway/internal/seo"
)

// VerifyMethod selects how domain ownership is proven.
type VerifyMethod string

// Supported verification methods.
const (
	VerifyDNS     VerifyMethod = "dns"
	VerifyMetaTag VerifyMethod = "meta_tag"
	VerifyFile    VerifyMethod = "file"
)

// VerifyResult is the backend's answer to a verification attempt.
// Instructions is populated when the proof is not yet in place.
type VerifyResult struct {
	Verified     bool   `json:"verified"`
	Message      string `json:"message"`
	Instructions string `json:"instructions,omitempty"`
}

// DeleteResult acknowledges a website deletion.
type DeleteResult struct {
	Message string `json:"message"`
}

type websitePayload struct {
	URL string `json:"url"`
}

type verifyPayload struct {
	Method VerifyMethod `json:"method"`
}

// ListWebsites returns all websites for the current user.
func (c *Client) ListWebsites(ctx context.Context) ([]seo.Website, error) {
	var out []seo.Website
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/websites", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWebsite fetches one website by ID.
func (c *Client) GetWebsite(ctx context.Context, id string) (seo.Website, error) {
	var out seo.Website
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/websites/"+id, nil, nil, &out); err != nil {
		return seo.Website{}, err
	}
	return out, nil
}

// CreateWebsite registers a new website. An empty URL is rejected before any
// network call.
func (c *Client) CreateWebsite(ctx context.Context, rawURL string) (seo.Website, error) {
	if strings.TrimSpace(rawURL) == "" {
		return seo.Website{}, ErrEmptyURL
	}
	var out seo.Website
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/websites", nil, websitePayload{URL: rawURL}, &out); err != nil {
		return seo.Website{}, err
	}
	return out, nil
}

// UpdateWebsite replaces the URL of an existing website.
func (c *Client) UpdateWebsite(ctx context.Context, id, rawURL string) (seo.Website, error) {
	if strings.TrimSpace(rawURL) == "" {
		return seo.Website{}, ErrEmptyURL
	}
	var out seo.Website
	if err := c.do(ctx, http.MethodPut, apiPrefix+"/websites/"+id, nil, websitePayload{URL: rawURL}, &out); err != nil {
		return seo.Website{}, err
	}
	return out, nil
}

// DeleteWebsite removes a website and its scan history.
func (c *Client) DeleteWebsite(ctx context.Context, id string) (DeleteResult, error) {
	var out DeleteResult
	if err := c.do(ctx, http.MethodDelete, apiPrefix+"/websites/"+id, nil, nil, &out); err != nil {
		return DeleteResult{}, err
	}
	return out, nil
}

// VerifyWebsite asks the backend to check the ownership proof for the given
// method. The backend performs the actual DNS/meta-tag/file check.
func (c *Client) VerifyWebsite(ctx context.Context, id string, method VerifyMethod) (VerifyResult, error) {
	var out VerifyResult
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/websites/"+id+"/verify", nil, verifyPayload{Method: method}, &out); err != nil {
		return VerifyResult{}, err
	}
	return out, nil
}
