// Package view builds the ready-to-render page models served by the gateway.
// Builders are pure functions of fetched data; the only computation here is
// score classification and date/number formatting.
package view

import (
	"strconv"

	"github.com/devseo/dashboard-gateway/internal/seo"
)

// placeholder is rendered wherever a score is absent.
const placeholder = "—"

// ScoreBadge is a score with its qualitative tier. An absent score renders
// as a placeholder and carries no level; it is never forced into a tier.
type ScoreBadge struct {
	Score   *int           `json:"score"`
	Level   seo.ScoreLevel `json:"level,omitempty"`
	Display string         `json:"display"`
}

// NewScoreBadge classifies a nullable score for display.
func NewScoreBadge(score *int) ScoreBadge {
	if score == nil {
		return ScoreBadge{Display: placeholder}
	}
	return ScoreBadge{
		Score:   score,
		Level:   seo.ClassifyScore(*score),
		Display: strconv.Itoa(*score),
	}
}

// NewScoreBadgeValue is NewScoreBadge for scores that are always present.
func NewScoreBadgeValue(score int) ScoreBadge {
	return NewScoreBadge(&score)
}
