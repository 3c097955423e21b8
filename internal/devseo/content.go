package devseo

import (
	"context"
	"net/http"
	"strings"

	"github.com/devseo/dashboard-gateway/internal/seo"
)

// OptimizeRequest is an ad-hoc content analysis request. Either Text or URL
// must be supplied; TargetKeyword is optional.
type OptimizeRequest struct {
	Text          string `json:"text,omitempty"`
	URL           string `json:"url,omitempty"`
	TargetKeyword string `json:"target_keyword,omitempty"`
}

// OptimizeContent runs the backend's content analysis. The result is
// computed per request and never cached.
func (c *Client) OptimizeContent(ctx context.Context, req OptimizeRequest) (seo.ContentOptimizeResult, error) {
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.URL) == "" {
		return seo.ContentOptimizeResult{}, ErrEmptyOptimizeInput
	}
	var out seo.ContentOptimizeResult
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/content/optimize", nil, req, &out); err != nil {
		return seo.ContentOptimizeResult{}, err
	}
	return out, nil
}
