// Package reward rolls per-class comment scoring up into per-contributor
// payout totals for one closed issue.
package reward

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rewardservice/internal/domain/contribution"
	"rewardservice/internal/domain/scoring"
)

// ScoringRefs keeps the audit trail: the accumulators a detail's score was
// taken from. At most one field is set per detail.
type ScoringRefs struct {
	Specification  *scoring.Accumulator `json:"specification,omitempty"`
	Task           *decimal.Decimal     `json:"task,omitempty"`
	IssueComments  *scoring.Accumulator `json:"issue_comments,omitempty"`
	ReviewComments *scoring.Accumulator `json:"review_comments,omitempty"`
}

// Source identifies where a detail came from.
type Source struct {
	Issue contribution.Issue `json:"issue"`
	User  contribution.User  `json:"user"`
}

// UserScoreDetail is one contributor's score for one contribution instance.
type UserScoreDetail struct {
	Score   decimal.Decimal   `json:"score"`
	View    contribution.View `json:"view"`
	Role    contribution.Role `json:"role"`
	Kind    contribution.Kind `json:"kind"`
	Scoring ScoringRefs       `json:"scoring"`
	Source  Source            `json:"source"`
}

// ContributorTotal is the terminal per-contributor artifact.
type ContributorTotal struct {
	User    contribution.User `json:"user"`
	Total   decimal.Decimal   `json:"total"`
	Details []UserScoreDetail `json:"details"`
}

// TotalsByContributor maps contributor id to their total and audit trail.
type TotalsByContributor map[int64]*ContributorTotal

// Run is one completed scoring run for one issue.
type Run struct {
	ID          uuid.UUID
	IssueID     int64
	IssueNumber int
	Totals      TotalsByContributor
	CreatedAt   time.Time
}

// SumTotals folds the ordered detail sequence into per-contributor totals.
// The fold is pure: identical input yields identical totals and detail order.
func SumTotals(details []UserScoreDetail) TotalsByContributor {
	totals := make(TotalsByContributor)
	for _, d := range details {
		ct, ok := totals[d.Source.User.ID]
		if !ok {
			ct = &ContributorTotal{User: d.Source.User}
			totals[d.Source.User.ID] = ct
		}
		ct.Total = ct.Total.Add(d.Score)
		ct.Details = append(ct.Details, d)
	}
	return totals
}
