// Package scoring computes per-comment, per-user scores along independent
// quality dimensions and accumulates them per contribution class.
package scoring

import (
	"github.com/shopspring/decimal"

	"rewardservice/internal/domain/contribution"
)

// ElementDetail is the per-markup-element share of a comment's format score.
type ElementDetail struct {
	Count int             `json:"count"`
	Score decimal.Decimal `json:"score"`
}

// FormatBreakdown maps an HTML element tag to its contribution.
type FormatBreakdown map[string]ElementDetail

// CommentScore holds one comment's dimension scores for one user.
// TotalScore is always WordScore + FormatScore + RelevanceScore.
type CommentScore struct {
	Comment        contribution.Comment `json:"comment"`
	WordScore      decimal.Decimal      `json:"word_score"`
	FormatScore    decimal.Decimal      `json:"format_score"`
	FormatDetails  FormatBreakdown      `json:"format_details,omitempty"`
	RelevanceScore decimal.Decimal      `json:"relevance_score"`
	TotalScore     decimal.Decimal      `json:"total_score"`
}

// UserScores is one contributor's ledger within a class accumulator.
type UserScores struct {
	User            contribution.User       `json:"user"`
	Details         map[int64]*CommentScore `json:"details"`
	TotalScoreTotal decimal.Decimal         `json:"total_score_total"`
}

func (u *UserScores) recomputeTotal() {
	total := decimal.Zero
	for _, d := range u.Details {
		total = total.Add(d.TotalScore)
	}
	u.TotalScoreTotal = total
}

// Accumulator is the per-class scoring ledger, built once per run. It must
// never be shared across classes or runs.
type Accumulator struct {
	Class          contribution.Class    `json:"class"`
	WordMultiplier decimal.Decimal       `json:"word_multiplier"`
	CommentScores  map[int64]*UserScores `json:"comment_scores"`
}

// wordMultipliers is the rubric's per-class word-score weighting. Classes not
// listed score at weight one.
var wordMultipliers = map[contribution.Class]decimal.Decimal{
	contribution.IssueContributorComment:  decimal.RequireFromString("0.25"),
	contribution.ReviewContributorComment: decimal.RequireFromString("0.25"),
}

// NewAccumulator returns a fresh, empty accumulator for the class. A new
// value is allocated on every call; callers own it exclusively.
func NewAccumulator(class contribution.Class) *Accumulator {
	mult, ok := wordMultipliers[class]
	if !ok {
		mult = decimal.NewFromInt(1)
	}
	return &Accumulator{
		Class:          class,
		WordMultiplier: mult,
		CommentScores:  make(map[int64]*UserScores),
	}
}

// userScores returns the ledger slot for the user, creating it on first use.
func (a *Accumulator) userScores(user contribution.User) *UserScores {
	us, ok := a.CommentScores[user.ID]
	if !ok {
		us = &UserScores{
			User:    user,
			Details: make(map[int64]*CommentScore),
		}
		a.CommentScores[user.ID] = us
	}
	return us
}

// FindCommentScore locates an entry by comment identity.
func (a *Accumulator) FindCommentScore(commentID int64) (*UserScores, *CommentScore, bool) {
	for _, us := range a.CommentScores {
		if cs, ok := us.Details[commentID]; ok {
			return us, cs, true
		}
	}
	return nil, nil, false
}
