package view

import (
	"fmt"

	"github.com/devseo/dashboard-gateway/internal/devseo"
	"github.com/devseo/dashboard-gateway/internal/seo"
)

// WebsiteRow is one entry in the website list: the site plus its most recent
// scan, when one exists.
type WebsiteRow struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	Domain     string     `json:"domain"`
	Verified   bool       `json:"verified"`
	LatestScan *ScanRow   `json:"latest_scan,omitempty"`
	Score      ScoreBadge `json:"score"`
	CreatedAt  string     `json:"created_at"`
}

// ScanRow is a scan summarized for list rendering.
type ScanRow struct {
	ID           string         `json:"id"`
	WebsiteID    string         `json:"website_id"`
	Status       seo.ScanStatus `json:"status"`
	Score        ScoreBadge     `json:"score"`
	Performance  ScoreBadge     `json:"performance"`
	PagesScanned int            `json:"pages_scanned"`
	StartedAt    string         `json:"started_at"`
	CompletedAt  string         `json:"completed_at"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// NewScanRow summarizes a scan. Absent scores render as placeholders; they
// are never classified.
func NewScanRow(s seo.Scan) ScanRow {
	row := ScanRow{
		ID:           s.ID,
		WebsiteID:    s.WebsiteID,
		Status:       s.Status,
		Score:        NewScoreBadge(s.SEOScore),
		Performance:  NewScoreBadge(s.PerformanceScore),
		PagesScanned: s.PagesScanned,
		StartedAt:    formatTimeValue(s.StartedAt),
		CompletedAt:  formatTime(s.CompletedAt),
	}
	if s.ErrorMessage != nil {
		row.ErrorMessage = *s.ErrorMessage
	}
	return row
}

// NewWebsiteRow pairs a website with its latest scan, which may be nil when
// the site has never been scanned.
func NewWebsiteRow(w seo.Website, latest *seo.Scan) WebsiteRow {
	row := WebsiteRow{
		ID:        w.ID,
		URL:       w.URL,
		Domain:    w.Domain,
		Verified:  w.Verified,
		Score:     NewScoreBadge(nil),
		CreatedAt: formatTimeValue(w.CreatedAt),
	}
	if latest != nil {
		scan := NewScanRow(*latest)
		row.LatestScan = &scan
		row.Score = scan.Score
	}
	return row
}

// NewWebsiteList builds list rows, resolving each website's latest scan by
// StartedAt from the full scan set.
func NewWebsiteList(websites []seo.Website, scans []seo.Scan) []WebsiteRow {
	latest := make(map[string]*seo.Scan, len(websites))
	for i := range scans {
		s := &scans[i]
		current, ok := latest[s.WebsiteID]
		if !ok || s.StartedAt.After(current.StartedAt) {
			latest[s.WebsiteID] = s
		}
	}
	rows := make([]WebsiteRow, 0, len(websites))
	for _, w := range websites {
		rows = append(rows, NewWebsiteRow(w, latest[w.ID]))
	}
	return rows
}

// VerificationOption is one way to prove ownership of a domain, with the
// exact value the user has to publish.
type VerificationOption struct {
	Method      devseo.VerifyMethod `json:"method"`
	Label       string              `json:"label"`
	Value       string              `json:"value"`
	Instruction string              `json:"instruction"`
}

// WebsiteDetail is the full website page: the site, its scan history, and
// verification instructions for sites not yet verified.
type WebsiteDetail struct {
	WebsiteRow
	VerifiedAt   string               `json:"verified_at"`
	Scans        []ScanRow            `json:"scans"`
	Verification []VerificationOption `json:"verification,omitempty"`
}

// NewWebsiteDetail builds the detail page. Scans are expected in the order
// the backend returns them (newest first).
func NewWebsiteDetail(w seo.Website, scans []seo.Scan) WebsiteDetail {
	var latest *seo.Scan
	if len(scans) > 0 {
		latest = &scans[0]
	}
	detail := WebsiteDetail{
		WebsiteRow: NewWebsiteRow(w, latest),
		VerifiedAt: formatTime(w.VerifiedAt),
		Scans:      make([]ScanRow, 0, len(scans)),
	}
	for _, s := range scans {
		detail.Scans = append(detail.Scans, NewScanRow(s))
	}
	if !w.Verified {
		detail.Verification = verificationOptions(w)
	}
	return detail
}

// verificationOptions lists the three supported ownership proofs for an
// unverified site, each with the literal value to publish.
func verificationOptions(w seo.Website) []VerificationOption {
	token := w.VerificationToken
	return []VerificationOption{
		{
			Method:      devseo.VerifyDNS,
			Label:       "DNS TXT record",
			Value:       fmt.Sprintf("devseo-verify=%s", token),
			Instruction: fmt.Sprintf("Add a TXT record to %s with this value, then run verification.", w.Domain),
		},
		{
			Method:      devseo.VerifyMetaTag,
			Label:       "HTML meta tag",
			Value:       fmt.Sprintf(`<meta name="devseo-verify" content="%s" />`, token),
			Instruction: "Add this tag to the <head> of your homepage, then run verification.",
		},
		{
			Method:      devseo.VerifyFile,
			Label:       "Verification file",
			Value:       token,
			Instruction: fmt.Sprintf("Upload a file at https://%s/devseo-verify.txt containing this value, then run verification.", w.Domain),
		},
	}
}
