package scoring

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rewardservice/internal/domain/contribution"
)

// RelevanceEntry is one semantic-relevance judgment, anchored to a comment by
// identity rather than position.
type RelevanceEntry struct {
	CommentID int64
	User      contribution.User
	Score     decimal.Decimal
}

// Engine runs the per-class comment scoring transforms. It holds the format
// scorer collaborator and a logger; it keeps no state between calls.
type Engine struct {
	format FormatScorer
	log    *zap.Logger
}

func NewEngine(format FormatScorer, log *zap.Logger) *Engine {
	return &Engine{format: format, log: log}
}

// ScoreUserComments scores one user's comments within one class and writes
// the entries into the class accumulator. A user with no comments gets no
// ledger slot. A dimension the format scorer cannot compute defaults to zero.
func (e *Engine) ScoreUserComments(user contribution.User, comments []contribution.Comment, acc *Accumulator) {
	if len(comments) == 0 {
		return
	}

	us := acc.userScores(user)
	for _, c := range comments {
		word, format, details, err := e.format.Score(c)
		if err != nil {
			e.log.Warn("format scoring failed, dimensions default to zero",
				zap.Int64("comment_id", c.ID),
				zap.String("login", user.Login),
				zap.Error(err),
			)
			word, format, details = decimal.Zero, decimal.Zero, nil
		}
		word = e.clamp("word", c.ID, word).Mul(acc.WordMultiplier)
		format = e.clamp("format", c.ID, format)

		entry := &CommentScore{
			Comment:        c,
			WordScore:      word,
			FormatScore:    format,
			FormatDetails:  details,
			RelevanceScore: decimal.Zero,
		}
		entry.TotalScore = entry.WordScore.Add(entry.FormatScore).Add(entry.RelevanceScore)
		us.Details[c.ID] = entry
	}
	us.recomputeTotal()
}

// ScoreComments builds one accumulator per comment-kind class of the view and
// scores every role occupant's comments into it. Accumulators are returned in
// fixed class order.
func (e *Engine) ScoreComments(roles contribution.RoleSets, comments []contribution.Comment, view contribution.View) []*Accumulator {
	byClass := contribution.ClassifyComments(roles, comments, view)

	var accs []*Accumulator
	for _, class := range contribution.Classes() {
		if class.Kind() != contribution.KindComment || class.View() != view {
			continue
		}

		occupants := roles.Occupants(class.Role())
		if len(occupants) == 0 {
			e.log.Info("no occupants for class", zap.String("class", string(class)))
		}

		acc := NewAccumulator(class)
		for _, user := range occupants {
			var own []contribution.Comment
			for _, c := range byClass[class] {
				if c.User.ID == user.ID {
					own = append(own, c)
				}
			}
			e.ScoreUserComments(user, own, acc)
		}
		accs = append(accs, acc)
	}
	return accs
}

// MergeRelevance folds relevance judgments into the accumulators, matching
// entries by comment identity, and recomputes comment and contributor totals.
// A judgment with no matching entry is dropped with a diagnostic; an entry
// with no judgment keeps relevance zero.
func (e *Engine) MergeRelevance(relevance []RelevanceEntry, accs []*Accumulator) {
	for _, rel := range relevance {
		score := e.clamp("relevance", rel.CommentID, rel.Score)

		matched := false
		for _, acc := range accs {
			us, cs, ok := acc.FindCommentScore(rel.CommentID)
			if !ok {
				continue
			}
			matched = true
			cs.RelevanceScore = score
			cs.TotalScore = cs.WordScore.Add(cs.FormatScore).Add(cs.RelevanceScore)
			us.recomputeTotal()
		}
		if !matched {
			e.log.Warn("relevance result has no matching comment entry, dropped",
				zap.Int64("comment_id", rel.CommentID),
			)
		}
	}
}

func (e *Engine) clamp(dimension string, commentID int64, score decimal.Decimal) decimal.Decimal {
	if score.IsNegative() {
		e.log.Warn("negative score clamped to zero",
			zap.String("dimension", dimension),
			zap.Int64("comment_id", commentID),
			zap.String("score", score.String()),
		)
		return decimal.Zero
	}
	return score
}
