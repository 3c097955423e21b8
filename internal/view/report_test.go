package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devseo/dashboard-gateway/internal/seo"
)

func sampleReport() seo.ScanReport {
	score := 82
	perf := 74
	started := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	done := started.Add(3 * time.Minute)
	return seo.ScanReport{
		Scan: seo.Scan{
			ID:               "s1",
			WebsiteID:        "w1",
			Status:           seo.ScanCompleted,
			SEOScore:         &score,
			PerformanceScore: &perf,
			PagesScanned:     3,
			StartedAt:        started,
			CompletedAt:      &done,
		},
		ReadabilityScore: 65,
		ReadabilityGrade: "8th grade",
		Issues: []seo.Issue{
			{
				Type:          "thin_content",
				Severity:      seo.SeverityInfo,
				Message:       "Word count below 300 on 1 page",
				SimpleMessage: "One page has very little text",
				Suggestion:    "Expand the page content",
				AffectedPages: 1,
			},
			{
				Type:          "missing_title",
				Severity:      seo.SeverityCritical,
				Message:       "Missing <title> element on 2 pages",
				SimpleMessage: "Two pages have no title",
				Suggestion:    "Add a unique title to every page",
				AffectedPages: 2,
			},
			{
				Type:          "short_meta",
				Severity:      seo.SeverityWarning,
				Message:       "Meta description under 50 characters",
				Suggestion:    "Write fuller meta descriptions",
				AffectedPages: 1,
			},
		},
		Pages: []seo.PageResult{
			{URL: "https://alpha.dev/", StatusCode: 200, SEOScore: 88, ReadabilityScore: 70},
		},
		Recommendations: []string{"Fix missing titles first"},
	}
}

func TestNewReportPageOrdersIssuesBySeverity(t *testing.T) {
	t.Parallel()

	page := NewReportPage(sampleReport(), false)

	require.Len(t, page.Issues, 3)
	require.Equal(t, seo.SeverityCritical, page.Issues[0].Severity)
	require.Equal(t, seo.SeverityWarning, page.Issues[1].Severity)
	require.Equal(t, seo.SeverityInfo, page.Issues[2].Severity)
	require.Equal(t, SeverityCounts{Critical: 1, Warning: 1, Info: 1}, page.Counts)
	require.False(t, page.Polling)
	require.Equal(t, "65", page.Readability.Display)
	require.Equal(t, seo.ScoreGood, page.Pages[0].Score.Level)
}

func TestNewReportPagePlainModeSwapsWording(t *testing.T) {
	t.Parallel()

	page := NewReportPage(sampleReport(), true)

	require.Equal(t, "Two pages have no title", page.Issues[0].Message)
	// Issues without a plain variant keep the technical wording.
	require.Equal(t, "Meta description under 50 characters", page.Issues[1].Message)
}

func TestNewReportPageRunningScanKeepsPolling(t *testing.T) {
	t.Parallel()

	r := seo.ScanReport{Scan: seo.Scan{
		ID:        "s2",
		WebsiteID: "w1",
		Status:    seo.ScanRunning,
		StartedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}}
	page := NewReportPage(r, false)

	require.True(t, page.Polling)
	require.Equal(t, "—", page.Score.Display)
	require.Equal(t, "—", page.Readability.Display)
	require.Empty(t, page.Issues)
}
