package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devseo/dashboard-gateway/internal/seo"
)

func TestNewScoreBadge(t *testing.T) {
	t.Parallel()

	intp := func(v int) *int { return &v }

	tests := []struct {
		name    string
		score   *int
		level   seo.ScoreLevel
		display string
	}{
		{name: "absent score is a placeholder", score: nil, level: "", display: "—"},
		{name: "good lower bound", score: intp(71), level: seo.ScoreGood, display: "71"},
		{name: "warning upper bound", score: intp(70), level: seo.ScoreWarning, display: "70"},
		{name: "warning lower bound", score: intp(41), level: seo.ScoreWarning, display: "41"},
		{name: "critical upper bound", score: intp(40), level: seo.ScoreCritical, display: "40"},
		{name: "perfect score", score: intp(100), level: seo.ScoreGood, display: "100"},
		{name: "zero", score: intp(0), level: seo.ScoreCritical, display: "0"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			badge := NewScoreBadge(tt.score)
			require.Equal(t, tt.level, badge.Level)
			require.Equal(t, tt.display, badge.Display)
		})
	}
}
