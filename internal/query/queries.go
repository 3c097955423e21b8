package query

import (
	"context"

	"go.uber.org/zap"

	"github.com/devseo/dashboard-gateway/internal/devseo"
	"github.com/devseo/dashboard-gateway/internal/seo"
)

// Cached resource names.
const (
	ResourceWebsites = "websites"
	ResourceScans    = "scans"
	ResourceReports  = "reports"
	ResourcePages    = "pages"
)

// Backend is the slice of the devseo client the query layer depends on.
type Backend interface {
	ListWebsites(ctx context.Context) ([]seo.Website, error)
	GetWebsite(ctx context.Context, id string) (seo.Website, error)
	CreateWebsite(ctx context.Context, rawURL string) (seo.Website, error)
	UpdateWebsite(ctx context.Context, id, rawURL string) (seo.Website, error)
	DeleteWebsite(ctx context.Context, id string) (devseo.DeleteResult, error)
	VerifyWebsite(ctx context.Context, id string, method devseo.VerifyMethod) (devseo.VerifyResult, error)
	ListScans(ctx context.Context, websiteID string) ([]seo.Scan, error)
	GetScanReport(ctx context.Context, id string) (seo.ScanReport, error)
	StartScan(ctx context.Context, websiteID string, maxPages int) (devseo.StartScanResult, error)
	ScanPages(ctx context.Context, id string) ([]seo.PageResult, error)
	OptimizeContent(ctx context.Context, req devseo.OptimizeRequest) (seo.ContentOptimizeResult, error)
	Health(ctx context.Context) (devseo.HealthStatus, error)
}

// Queries is the typed data-fetching layer the views read through. Reads go
// via the Store; mutations hit the backend directly and invalidate the
// collections they touched. Mutations never poll.
type Queries struct {
	backend Backend
	store   *Store
	logger  *zap.Logger
}

// New constructs a Queries layer.
func New(backend Backend, store *Store, logger *zap.Logger) *Queries {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queries{backend: backend, store: store, logger: logger}
}

// Websites returns the cached website collection.
func (q *Queries) Websites(ctx context.Context) ([]seo.Website, error) {
	v, err := q.store.Fetch(ctx, Key{Resource: ResourceWebsites}, func(ctx context.Context) (any, error) {
		return q.backend.ListWebsites(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]seo.Website), nil
}

// Website returns one cached website.
func (q *Queries) Website(ctx context.Context, id string) (seo.Website, error) {
	v, err := q.store.Fetch(ctx, Key{Resource: ResourceWebsites, ID: id}, func(ctx context.Context) (any, error) {
		return q.backend.GetWebsite(ctx, id)
	})
	if err != nil {
		return seo.Website{}, err
	}
	return v.(seo.Website), nil
}

// Scans returns the cached scan collection, optionally filtered by website.
func (q *Queries) Scans(ctx context.Context, websiteID string) ([]seo.Scan, error) {
	v, err := q.store.Fetch(ctx, Key{Resource: ResourceScans, ID: websiteID}, func(ctx context.Context) (any, error) {
		return q.backend.ListScans(ctx, websiteID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]seo.Scan), nil
}

// ScanReport returns the cached report for one scan.
func (q *Queries) ScanReport(ctx context.Context, id string) (seo.ScanReport, error) {
	v, err := q.store.Fetch(ctx, Key{Resource: ResourceReports, ID: id}, func(ctx context.Context) (any, error) {
		return q.backend.GetScanReport(ctx, id)
	})
	if err != nil {
		return seo.ScanReport{}, err
	}
	return v.(seo.ScanReport), nil
}

// RefreshScanReport re-fetches a scan report, bypassing the cache. The poll
// watcher uses this so each cycle observes the backend's current status
// instead of a cached snapshot.
func (q *Queries) RefreshScanReport(ctx context.Context, id string) (seo.ScanReport, error) {
	v, err := q.store.Refresh(ctx, Key{Resource: ResourceReports, ID: id}, func(ctx context.Context) (any, error) {
		return q.backend.GetScanReport(ctx, id)
	})
	if err != nil {
		return seo.ScanReport{}, err
	}
	return v.(seo.ScanReport), nil
}

// ScanPages returns the cached per-page results for one scan.
func (q *Queries) ScanPages(ctx context.Context, id string) ([]seo.PageResult, error) {
	v, err := q.store.Fetch(ctx, Key{Resource: ResourcePages, ID: id}, func(ctx context.Context) (any, error) {
		return q.backend.ScanPages(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.([]seo.PageResult), nil
}

// CreateWebsite registers a website and invalidates the website collection.
func (q *Queries) CreateWebsite(ctx context.Context, rawURL string) (seo.Website, error) {
	site, err := q.backend.CreateWebsite(ctx, rawURL)
	if err != nil {
		return seo.Website{}, err
	}
	q.store.Invalidate(Key{Resource: ResourceWebsites})
	return site, nil
}

// UpdateWebsite changes a website URL and invalidates its cached entries.
func (q *Queries) UpdateWebsite(ctx context.Context, id, rawURL string) (seo.Website, error) {
	site, err := q.backend.UpdateWebsite(ctx, id, rawURL)
	if err != nil {
		return seo.Website{}, err
	}
	q.store.Invalidate(Key{Resource: ResourceWebsites}, Key{Resource: ResourceWebsites, ID: id})
	return site, nil
}

// DeleteWebsite removes a website. Its scans disappear with it, so both
// resources are invalidated.
func (q *Queries) DeleteWebsite(ctx context.Context, id string) (devseo.DeleteResult, error) {
	res, err := q.backend.DeleteWebsite(ctx, id)
	if err != nil {
		return devseo.DeleteResult{}, err
	}
	q.store.Invalidate(Key{Resource: ResourceWebsites}, Key{Resource: ResourceWebsites, ID: id})
	q.store.InvalidateResource(ResourceScans)
	return res, nil
}

// VerifyWebsite runs an ownership check. A successful verification mutates
// the website server-side, so its cache entries are invalidated.
func (q *Queries) VerifyWebsite(ctx context.Context, id string, method devseo.VerifyMethod) (devseo.VerifyResult, error) {
	res, err := q.backend.VerifyWebsite(ctx, id, method)
	if err != nil {
		return devseo.VerifyResult{}, err
	}
	if res.Verified {
		q.store.Invalidate(Key{Resource: ResourceWebsites}, Key{Resource: ResourceWebsites, ID: id})
	}
	return res, nil
}

// StartScan queues a crawl and invalidates every cached scan list so the new
// scan shows up on the next read.
func (q *Queries) StartScan(ctx context.Context, websiteID string, maxPages int) (devseo.StartScanResult, error) {
	res, err := q.backend.StartScan(ctx, websiteID, maxPages)
	if err != nil {
		return devseo.StartScanResult{}, err
	}
	q.store.InvalidateResource(ResourceScans)
	return res, nil
}

// OptimizeContent is a stateless pass-through; results are never cached.
func (q *Queries) OptimizeContent(ctx context.Context, req devseo.OptimizeRequest) (seo.ContentOptimizeResult, error) {
	return q.backend.OptimizeContent(ctx, req)
}

// Health probes the backend.
func (q *Queries) Health(ctx context.Context) (devseo.HealthStatus, error) {
	return q.backend.Health(ctx)
}
