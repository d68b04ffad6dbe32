package scoring

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rewardservice/internal/domain/contribution"
)

// fixedScorer returns the same dimension scores for every comment.
type fixedScorer struct {
	word   decimal.Decimal
	format decimal.Decimal
	err    error
}

func (f fixedScorer) Score(contribution.Comment) (decimal.Decimal, decimal.Decimal, FormatBreakdown, error) {
	if f.err != nil {
		return decimal.Zero, decimal.Zero, nil, f.err
	}
	return f.word, f.format, FormatBreakdown{"a": {Count: 1, Score: f.format}}, nil
}

func user(id int64, login string) contribution.User {
	return contribution.User{ID: id, Login: login, Type: contribution.AccountTypeUser}
}

func TestNewAccumulatorIsFresh(t *testing.T) {
	a := NewAccumulator(contribution.IssueIssuerComment)
	b := NewAccumulator(contribution.IssueIssuerComment)

	require.NotSame(t, a, b)
	a.CommentScores[1] = &UserScores{}
	assert.Empty(t, b.CommentScores, "accumulators must not share state")
}

func TestNewAccumulatorWordMultiplier(t *testing.T) {
	assert.True(t, NewAccumulator(contribution.IssueIssuerComment).WordMultiplier.Equal(decimal.NewFromInt(1)))
	assert.True(t, NewAccumulator(contribution.IssueContributorComment).WordMultiplier.Equal(decimal.RequireFromString("0.25")))
}

func TestScoreUserComments(t *testing.T) {
	e := NewEngine(fixedScorer{word: decimal.NewFromInt(1), format: decimal.NewFromInt(2)}, zap.NewNop())
	acc := NewAccumulator(contribution.IssueIssuerComment)
	author := user(7, "issuer")

	e.ScoreUserComments(author, []contribution.Comment{
		{ID: 10, Body: "x", User: author},
		{ID: 11, Body: "y", User: author},
	}, acc)

	us := acc.CommentScores[7]
	require.NotNil(t, us)
	require.Len(t, us.Details, 2)

	entry := us.Details[10]
	assert.True(t, entry.WordScore.Equal(decimal.NewFromInt(1)))
	assert.True(t, entry.FormatScore.Equal(decimal.NewFromInt(2)))
	assert.True(t, entry.RelevanceScore.IsZero(), "relevance filled in later")
	assert.True(t, entry.TotalScore.Equal(decimal.NewFromInt(3)))
	assert.True(t, us.TotalScoreTotal.Equal(decimal.NewFromInt(6)))
}

func TestScoreUserCommentsNoComments(t *testing.T) {
	e := NewEngine(fixedScorer{word: decimal.NewFromInt(1)}, zap.NewNop())
	acc := NewAccumulator(contribution.IssueIssuerComment)

	e.ScoreUserComments(user(7, "issuer"), nil, acc)
	assert.Empty(t, acc.CommentScores, "no entry for a user with zero comments")
}

func TestScoreUserCommentsScorerFailure(t *testing.T) {
	e := NewEngine(fixedScorer{err: fmt.Errorf("boom")}, zap.NewNop())
	acc := NewAccumulator(contribution.IssueIssuerComment)
	author := user(7, "issuer")

	e.ScoreUserComments(author, []contribution.Comment{{ID: 10, User: author}}, acc)

	entry := acc.CommentScores[7].Details[10]
	require.NotNil(t, entry)
	assert.True(t, entry.WordScore.IsZero())
	assert.True(t, entry.FormatScore.IsZero())
	assert.True(t, entry.TotalScore.IsZero())
}

func TestScoreUserCommentsClampsNegatives(t *testing.T) {
	e := NewEngine(fixedScorer{word: decimal.NewFromInt(-3), format: decimal.NewFromInt(2)}, zap.NewNop())
	acc := NewAccumulator(contribution.IssueIssuerComment)
	author := user(7, "issuer")

	e.ScoreUserComments(author, []contribution.Comment{{ID: 10, User: author}}, acc)

	entry := acc.CommentScores[7].Details[10]
	assert.True(t, entry.WordScore.IsZero())
	assert.True(t, entry.TotalScore.Equal(decimal.NewFromInt(2)))
}

func TestScoreCommentsBuildsAccumulatorPerClass(t *testing.T) {
	e := NewEngine(fixedScorer{word: decimal.NewFromInt(1)}, zap.NewNop())

	issuer := user(1, "issuer")
	outsider := user(4, "outsider")
	issue := contribution.Issue{ID: 100, User: issuer}
	comments := []contribution.Comment{
		{ID: 10, User: issuer, Body: "a"},
		{ID: 11, User: outsider, Body: "b"},
	}
	roles := contribution.ClassifyRoles(issue, comments, nil)

	accs := e.ScoreComments(roles, comments, contribution.ViewIssue)

	require.Len(t, accs, 4)
	byClass := map[contribution.Class]*Accumulator{}
	for _, acc := range accs {
		byClass[acc.Class] = acc
	}

	assert.Contains(t, byClass[contribution.IssueIssuerComment].CommentScores, int64(1))
	assert.Contains(t, byClass[contribution.IssueContributorComment].CommentScores, int64(4))
	assert.Empty(t, byClass[contribution.IssueAssigneeComment].CommentScores)
	assert.Empty(t, byClass[contribution.IssueCollaboratorComment].CommentScores)
}

func TestMergeRelevance(t *testing.T) {
	e := NewEngine(fixedScorer{word: decimal.NewFromInt(1), format: decimal.NewFromInt(2)}, zap.NewNop())
	acc := NewAccumulator(contribution.IssueIssuerComment)
	author := user(7, "issuer")
	e.ScoreUserComments(author, []contribution.Comment{{ID: 10, User: author}}, acc)

	e.MergeRelevance([]RelevanceEntry{
		{CommentID: 10, User: author, Score: decimal.RequireFromString("1.5")},
	}, []*Accumulator{acc})

	entry := acc.CommentScores[7].Details[10]
	assert.True(t, entry.RelevanceScore.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, entry.TotalScore.Equal(decimal.RequireFromString("4.5")),
		"total is word + format + relevance")
	assert.True(t, acc.CommentScores[7].TotalScoreTotal.Equal(decimal.RequireFromString("4.5")))
}

func TestMergeRelevanceUnknownCommentDropped(t *testing.T) {
	e := NewEngine(fixedScorer{word: decimal.NewFromInt(1)}, zap.NewNop())
	acc := NewAccumulator(contribution.IssueIssuerComment)
	author := user(7, "issuer")
	e.ScoreUserComments(author, []contribution.Comment{{ID: 10, User: author}}, acc)
	before := acc.CommentScores[7].TotalScoreTotal

	e.MergeRelevance([]RelevanceEntry{
		{CommentID: 999, User: author, Score: decimal.NewFromInt(1)},
	}, []*Accumulator{acc})

	assert.True(t, acc.CommentScores[7].TotalScoreTotal.Equal(before),
		"unmatched relevance result must not change any total")
}

func TestMergeRelevanceMissingStaysZero(t *testing.T) {
	e := NewEngine(fixedScorer{word: decimal.NewFromInt(1)}, zap.NewNop())
	acc := NewAccumulator(contribution.IssueIssuerComment)
	author := user(7, "issuer")
	e.ScoreUserComments(author, []contribution.Comment{
		{ID: 10, User: author},
		{ID: 11, User: author},
	}, acc)

	e.MergeRelevance([]RelevanceEntry{
		{CommentID: 10, User: author, Score: decimal.NewFromInt(1)},
	}, []*Accumulator{acc})

	assert.True(t, acc.CommentScores[7].Details[11].RelevanceScore.IsZero())
}

func TestMergeRelevanceClampsNegative(t *testing.T) {
	e := NewEngine(fixedScorer{word: decimal.NewFromInt(1)}, zap.NewNop())
	acc := NewAccumulator(contribution.IssueIssuerComment)
	author := user(7, "issuer")
	e.ScoreUserComments(author, []contribution.Comment{{ID: 10, User: author}}, acc)

	e.MergeRelevance([]RelevanceEntry{
		{CommentID: 10, User: author, Score: decimal.NewFromInt(-2)},
	}, []*Accumulator{acc})

	entry := acc.CommentScores[7].Details[10]
	assert.True(t, entry.RelevanceScore.IsZero())
	assert.True(t, entry.TotalScore.Equal(decimal.NewFromInt(1)))
}
