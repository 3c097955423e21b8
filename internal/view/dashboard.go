package view

import (
	"sort"

	"github.com/devseo/dashboard-gateway/internal/seo"
)

// recentScanLimit caps the recent-activity list on the dashboard.
const recentScanLimit = 5

// DashboardPage is the overview: fleet-wide counts, the average score across
// each site's most recent completed scan, and recent activity.
type DashboardPage struct {
	TotalWebsites    int          `json:"total_websites"`
	VerifiedWebsites int          `json:"verified_websites"`
	ActiveScans      int          `json:"active_scans"`
	AverageScore     ScoreBadge   `json:"average_score"`
	RecentScans      []ScanRow    `json:"recent_scans"`
	Websites         []WebsiteRow `json:"websites"`
}

// NewDashboardPage aggregates websites and scans into the overview. The
// average covers one scan per website, the most recent completed one with a
// score; with no scored scans it stays a placeholder.
func NewDashboardPage(websites []seo.Website, scans []seo.Scan) DashboardPage {
	page := DashboardPage{
		Websites: NewWebsiteList(websites, scans),
	}
	page.TotalWebsites = len(websites)
	for _, w := range websites {
		if w.Verified {
			page.VerifiedWebsites++
		}
	}

	latestScored := make(map[string]*seo.Scan, len(websites))
	ordered := make([]seo.Scan, len(scans))
	copy(ordered, scans)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartedAt.After(ordered[j].StartedAt)
	})
	for i := range ordered {
		s := &ordered[i]
		if seo.ShouldContinuePolling(s.Status) {
			page.ActiveScans++
			continue
		}
		if s.Status != seo.ScanCompleted || s.SEOScore == nil {
			continue
		}
		if _, ok := latestScored[s.WebsiteID]; !ok {
			latestScored[s.WebsiteID] = s
		}
	}

	if len(latestScored) > 0 {
		sum := 0
		for _, s := range latestScored {
			sum += *s.SEOScore
		}
		page.AverageScore = NewScoreBadgeValue(sum / len(latestScored))
	} else {
		page.AverageScore = NewScoreBadge(nil)
	}

	limit := recentScanLimit
	if len(ordered) < limit {
		limit = len(ordered)
	}
	page.RecentScans = make([]ScanRow, 0, limit)
	for _, s := range ordered[:limit] {
		page.RecentScans = append(page.RecentScans, NewScanRow(s))
	}
	return page
}
