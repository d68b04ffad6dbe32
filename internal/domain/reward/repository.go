package reward

import (
	"context"

	"rewardservice/internal/domain/contribution"
	"rewardservice/internal/domain/scoring"
)

// Repository stores completed scoring runs for audit reads.
type Repository interface {
	SaveRun(ctx context.Context, run Run) error
	ListRunsByIssue(ctx context.Context, issueID int64) ([]Run, error)
}

// RelevanceScorer judges the semantic relevance of each comment to the issue,
// in one batch per (issue, view). Results are anchored by comment identity.
// Scores are on a bounded non-negative scale. Any failure is fatal to the
// scoring run.
type RelevanceScorer interface {
	ScoreComments(ctx context.Context, issue contribution.Issue, comments []contribution.Comment) ([]scoring.RelevanceEntry, error)
}
