package seo

// ScoreLevel is the qualitative tier for a 0-100 score.
type ScoreLevel string

// Score tiers used everywhere a score is rendered.
const (
	ScoreGood     ScoreLevel = "good"
	ScoreWarning  ScoreLevel = "warning"
	ScoreCritical ScoreLevel = "critical"
)

// ClassifyScore maps a numeric score onto exactly one tier: >= 71 is good,
// 41-70 is warning, and <= 40 is critical. Absent scores must never reach
// this function; callers branch on presence first (see view.NewScoreBadge).
func ClassifyScore(score int) ScoreLevel {
	switch {
	case score >= 71:
		return ScoreGood
	case score >= 41:
		return ScoreWarning
	default:
		return ScoreCritical
	}
}
