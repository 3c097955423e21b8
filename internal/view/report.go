package view

import (
	"sort"

	"github.com/devseo/dashboard-gateway/internal/seo"
)

// IssueView is one detected issue with the wording already chosen. Plain
// mode swaps the technical message for the plain-English one when the
// backend supplies it.
type IssueView struct {
	Type          string       `json:"type"`
	Severity      seo.Severity `json:"severity"`
	Message       string       `json:"message"`
	Suggestion    string       `json:"suggestion"`
	AffectedPages int          `json:"affected_pages"`
	PageURLs      []string     `json:"page_urls,omitempty"`
}

// SeverityCounts tallies issues per severity for the report header.
type SeverityCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// PageView is one crawled page with its scores classified.
type PageView struct {
	URL              string     `json:"url"`
	StatusCode       int        `json:"status_code"`
	Score            ScoreBadge `json:"score"`
	Readability      ScoreBadge `json:"readability"`
	ReadabilityGrade string     `json:"readability_grade"`
	ResponseTimeMs   int        `json:"response_time_ms"`
	IssuesCount      int        `json:"issues_count"`
	Title            string     `json:"title"`
	WordCount        int        `json:"word_count"`
}

// ReportPage is the scan report ready for rendering. Polling determines
// whether the client should keep the report fresh.
type ReportPage struct {
	ScanRow
	Readability      ScoreBadge     `json:"readability"`
	ReadabilityGrade string         `json:"readability_grade"`
	Counts           SeverityCounts `json:"severity_counts"`
	Issues           []IssueView    `json:"issues"`
	Pages            []PageView     `json:"pages"`
	Recommendations  []string       `json:"recommendations"`
	Polling          bool           `json:"polling"`
}

// NewReportPage builds the report view. Issues come out ordered by severity,
// most severe first; plain selects the plain-English issue wording.
func NewReportPage(r seo.ScanReport, plain bool) ReportPage {
	page := ReportPage{
		ScanRow:          NewScanRow(r.Scan),
		ReadabilityGrade: r.ReadabilityGrade,
		Issues:           make([]IssueView, 0, len(r.Issues)),
		Pages:            make([]PageView, 0, len(r.Pages)),
		Recommendations:  r.Recommendations,
		Polling:          seo.ShouldContinuePolling(r.Status),
	}
	if r.Status == seo.ScanCompleted {
		page.Readability = NewScoreBadgeValue(r.ReadabilityScore)
	} else {
		page.Readability = NewScoreBadge(nil)
	}

	issues := make([]seo.Issue, len(r.Issues))
	copy(issues, r.Issues)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Rank() < issues[j].Severity.Rank()
	})
	for _, issue := range issues {
		page.Issues = append(page.Issues, newIssueView(issue, plain))
		switch issue.Severity {
		case seo.SeverityCritical:
			page.Counts.Critical++
		case seo.SeverityWarning:
			page.Counts.Warning++
		default:
			page.Counts.Info++
		}
	}
	for _, p := range r.Pages {
		page.Pages = append(page.Pages, NewPageView(p))
	}
	return page
}

// NewPageView classifies a crawled page's scores for display.
func NewPageView(p seo.PageResult) PageView {
	return PageView{
		URL:              p.URL,
		StatusCode:       p.StatusCode,
		Score:            NewScoreBadgeValue(p.SEOScore),
		Readability:      NewScoreBadgeValue(p.ReadabilityScore),
		ReadabilityGrade: p.ReadabilityGrade,
		ResponseTimeMs:   p.ResponseTimeMs,
		IssuesCount:      p.IssuesCount,
		Title:            p.Title,
		WordCount:        p.WordCount,
	}
}

func newIssueView(issue seo.Issue, plain bool) IssueView {
	message := issue.Message
	if plain && issue.SimpleMessage != "" {
		message = issue.SimpleMessage
	}
	return IssueView{
		Type:          issue.Type,
		Severity:      issue.Severity,
		Message:       message,
		Suggestion:    issue.Suggestion,
		AffectedPages: issue.AffectedPages,
		PageURLs:      issue.PageURLs,
	}
}
