package llm

import (
	"context"

	"github.com/shopspring/decimal"

	"rewardservice/internal/domain/contribution"
	"rewardservice/internal/domain/scoring"
)

// StaticRelevance scores every comment with a fixed value. Stands in for the
// OpenAI judge in tests and in deployments without an API key.
type StaticRelevance struct {
	Score decimal.Decimal
}

func NewStaticRelevance(score decimal.Decimal) *StaticRelevance {
	return &StaticRelevance{Score: score}
}

func (s *StaticRelevance) ScoreComments(_ context.Context, _ contribution.Issue, comments []contribution.Comment) ([]scoring.RelevanceEntry, error) {
	entries := make([]scoring.RelevanceEntry, 0, len(comments))
	for _, c := range comments {
		entries = append(entries, scoring.RelevanceEntry{
			CommentID: c.ID,
			User:      c.User,
			Score:     s.Score,
		})
	}
	return entries, nil
}
