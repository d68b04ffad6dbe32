package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardservice/internal/domain/contribution"
)

func openaiReply(t *testing.T, scores map[string]float64) string {
	t.Helper()
	content, err := json.Marshal(map[string]any{"scores": scores})
	require.NoError(t, err)
	reply, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": string(content)}},
		},
	})
	require.NoError(t, err)
	return string(reply)
}

func testComments() (contribution.Issue, []contribution.Comment) {
	author := contribution.User{ID: 1, Login: "a", Type: contribution.AccountTypeUser}
	issue := contribution.Issue{ID: 100, Title: "t", Body: "b", User: author}
	comments := []contribution.Comment{
		{ID: 10, Body: "first", User: author},
		{ID: 11, Body: "second", User: author},
	}
	return issue, comments
}

func TestOpenAIRelevanceScoreComments(t *testing.T) {
	issue, comments := testComments()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(openaiReply(t, map[string]float64{"10": 0.8, "11": 0.3})))
	}))
	defer srv.Close()

	o := NewOpenAIRelevance("test-key", "")
	o.apiURL = srv.URL

	entries, err := o.ScoreComments(context.Background(), issue, comments)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, int64(10), entries[0].CommentID)
	assert.True(t, entries[0].Score.Equal(decimal.RequireFromString("0.8")))
	assert.Equal(t, int64(11), entries[1].CommentID)
	assert.True(t, entries[1].Score.Equal(decimal.RequireFromString("0.3")))
}

func TestOpenAIRelevanceMissingCommentIsError(t *testing.T) {
	issue, comments := testComments()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(openaiReply(t, map[string]float64{"10": 0.8})))
	}))
	defer srv.Close()

	o := NewOpenAIRelevance("test-key", "")
	o.apiURL = srv.URL

	_, err := o.ScoreComments(context.Background(), issue, comments)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing comment 11")
}

func TestOpenAIRelevanceClampsAboveOne(t *testing.T) {
	issue, comments := testComments()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(openaiReply(t, map[string]float64{"10": 3, "11": 1})))
	}))
	defer srv.Close()

	o := NewOpenAIRelevance("test-key", "")
	o.apiURL = srv.URL

	entries, err := o.ScoreComments(context.Background(), issue, comments)
	require.NoError(t, err)
	assert.True(t, entries[0].Score.Equal(decimal.NewFromInt(1)))
}

func TestOpenAIRelevanceHTTPError(t *testing.T) {
	issue, comments := testComments()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	o := NewOpenAIRelevance("test-key", "")
	o.apiURL = srv.URL

	_, err := o.ScoreComments(context.Background(), issue, comments)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestStaticRelevance(t *testing.T) {
	issue, comments := testComments()

	s := NewStaticRelevance(decimal.NewFromInt(1))
	entries, err := s.ScoreComments(context.Background(), issue, comments)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for i, e := range entries {
		assert.Equal(t, comments[i].ID, e.CommentID)
		assert.True(t, e.Score.Equal(decimal.NewFromInt(1)))
	}
}
