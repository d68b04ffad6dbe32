package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardservice/internal/domain/contribution"
)

func mdComment(body string) contribution.Comment {
	return contribution.Comment{ID: 1, Body: body, User: contribution.User{ID: 7, Login: "a", Type: contribution.AccountTypeUser}}
}

func TestMarkdownScorerWordScore(t *testing.T) {
	s := NewMarkdownScorer()

	word, format, details, err := s.Score(mdComment("hello world"))
	require.NoError(t, err)

	// 2^0.85 rounded to two places.
	assert.True(t, word.Equal(decimal.RequireFromString("1.8")), "got %s", word)
	assert.True(t, format.IsZero())
	assert.Nil(t, details)
}

func TestMarkdownScorerEmptyBody(t *testing.T) {
	s := NewMarkdownScorer()

	word, format, details, err := s.Score(mdComment(""))
	require.NoError(t, err)
	assert.True(t, word.IsZero())
	assert.True(t, format.IsZero())
	assert.Nil(t, details)
}

func TestMarkdownScorerElements(t *testing.T) {
	s := NewMarkdownScorer()
	body := "# Plan\n\n- one\n- two\n\nsee [the docs](https://example.com)"

	_, format, details, err := s.Score(mdComment(body))
	require.NoError(t, err)

	require.Contains(t, details, "h1")
	require.Contains(t, details, "li")
	require.Contains(t, details, "a")

	assert.Equal(t, 1, details["h1"].Count)
	assert.Equal(t, 2, details["li"].Count)
	assert.Equal(t, 1, details["a"].Count)
	assert.True(t, details["li"].Score.Equal(decimal.RequireFromString("1")), "two list items at 0.5 each")

	// format score is the sum of the element breakdown
	sum := decimal.Zero
	for _, d := range details {
		sum = sum.Add(d.Score)
	}
	assert.True(t, format.Equal(sum))
}

func TestMarkdownScorerDeterministic(t *testing.T) {
	s := NewMarkdownScorer()
	body := "## Notes\n\nSome `code` and a [link](https://x.test)\n\n> quoted"

	w1, f1, d1, err := s.Score(mdComment(body))
	require.NoError(t, err)
	w2, f2, d2, err := s.Score(mdComment(body))
	require.NoError(t, err)

	assert.True(t, w1.Equal(w2))
	assert.True(t, f1.Equal(f2))
	assert.Equal(t, d1, d2)
}
