// Package seo defines the entities served by the DevSEO analysis backend.
package seo

import "time"

// Website is a registered site owned by a user. Verification state proves
// domain ownership; VerifiedAt is non-nil iff Verified is true.
type Website struct {
	ID                string     `json:"id"`
	URL               string     `json:"url"`
	Domain            string     `json:"domain"`
	UserID            string     `json:"user_id"`
	Verified          bool       `json:"verified"`
	VerifiedAt        *time.Time `json:"verified_at"`
	VerificationToken string     `json:"verification_token"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Scan is one crawl-and-score run against a website. Scores are populated
// only once the scan completes; ErrorMessage only when it fails. A scan is
// immutable once it reaches a terminal status.
type Scan struct {
	ID               string     `json:"id"`
	WebsiteID        string     `json:"website_id"`
	Status           ScanStatus `json:"status"`
	SEOScore         *int       `json:"seo_score"`
	PerformanceScore *int       `json:"performance_score"`
	PagesScanned     int        `json:"pages_scanned"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	ErrorMessage     *string    `json:"error_message"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Issue is a detected SEO, accessibility, or performance defect. Message is
// the technical wording; SimpleMessage is the plain-English alternative.
type Issue struct {
	Type          string   `json:"type"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	SimpleMessage string   `json:"simple_message"`
	Suggestion    string   `json:"suggestion"`
	AffectedPages int      `json:"affected_pages"`
	PageURLs      []string `json:"page_urls"`
}

// PageResult holds per-page crawl metrics for a completed scan.
type PageResult struct {
	URL              string `json:"url"`
	StatusCode       int    `json:"status_code"`
	SEOScore         int    `json:"seo_score"`
	ReadabilityScore int    `json:"readability_score"`
	ReadabilityGrade string `json:"readability_grade"`
	ResponseTimeMs   int    `json:"response_time_ms"`
	IssuesCount      int    `json:"issues_count"`
	Title            string `json:"title"`
	MetaDescription  string `json:"meta_description"`
	WordCount        int    `json:"word_count"`
}

// ScanReport extends a Scan with the detail the backend produces for
// completed runs: readability, ordered issues, per-page results, and
// free-text recommendations.
type ScanReport struct {
	Scan
	ReadabilityScore int          `json:"readability_score"`
	ReadabilityGrade string       `json:"readability_grade"`
	Issues           []Issue      `json:"issues"`
	Pages            []PageResult `json:"pages"`
	Recommendations  []string     `json:"recommendations"`
}

// TitleSuggestion is one ranked title candidate from the content optimizer.
type TitleSuggestion struct {
	Title          string `json:"title"`
	CharacterCount int    `json:"character_count"`
	Reasoning      string `json:"reasoning"`
}

// MetaDescription is the optimizer's suggested meta description.
type MetaDescription struct {
	Text           string `json:"text"`
	CharacterCount int    `json:"character_count"`
}

// Readability carries the optimizer's readability assessment.
type Readability struct {
	Score          int    `json:"score"`
	GradeLevel     string `json:"grade_level"`
	Interpretation string `json:"interpretation"`
}

// KeywordDensity reports how often one keyword appears in the analyzed text.
type KeywordDensity struct {
	Keyword string  `json:"keyword"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// ContentQuality holds word-count based suggestions for the analyzed text.
type ContentQuality struct {
	WordCount   int      `json:"word_count"`
	Suggestions []string `json:"suggestions"`
}

// ContentOptimizeResult is the stateless output of one optimization request.
// It is computed per request and never persisted.
type ContentOptimizeResult struct {
	TitleSuggestions []TitleSuggestion `json:"title_suggestions"`
	MetaDescription  MetaDescription   `json:"meta_description"`
	Readability      Readability       `json:"readability"`
	KeywordDensity   []KeywordDensity  `json:"keyword_density"`
	ContentQuality   ContentQuality    `json:"content_quality"`
}
