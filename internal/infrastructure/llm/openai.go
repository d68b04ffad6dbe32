// Package llm implements the semantic-relevance judge against the OpenAI
// Chat Completions API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"rewardservice/internal/domain/contribution"
	"rewardservice/internal/domain/scoring"
)

const (
	openaiAPIURL       = "https://api.openai.com/v1/chat/completions"
	openaiDefaultModel = "gpt-4o"
)

// OpenAIRelevance judges comment relevance in one batch per call. Results are
// keyed by comment id in the model response; a response missing any requested
// id is an error, since partial relevance would skew payouts.
type OpenAIRelevance struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

func NewOpenAIRelevance(apiKey, model string) *OpenAIRelevance {
	if model == "" {
		model = openaiDefaultModel
	}
	return &OpenAIRelevance{
		apiKey: apiKey,
		apiURL: openaiAPIURL,
		model:  model,
		client: &http.Client{},
	}
}

const relevancePrompt = `You judge how relevant each comment is to the issue it was posted on.
Score every comment between 0 (off-topic) and 1 (directly advances the issue).
Respond with a JSON object of the form {"scores": {"<comment id>": <score>}}
containing every comment id exactly once.`

func (o *OpenAIRelevance) ScoreComments(ctx context.Context, issue contribution.Issue, comments []contribution.Comment) ([]scoring.RelevanceEntry, error) {
	prompt, err := buildPrompt(issue, comments)
	if err != nil {
		return nil, err
	}

	reqBody := openaiRequest{
		Model:       o.model,
		Temperature: 0,
		Messages: []openaiMessage{
			{Role: "system", Content: relevancePrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &openaiResponseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("openai: parse response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices in response")
	}

	var scores relevanceScores
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &scores); err != nil {
		return nil, fmt.Errorf("openai: parse relevance scores: %w", err)
	}

	return anchorScores(scores.Scores, comments)
}

// anchorScores re-anchors the model's id-keyed scores on the original comment
// records. Every comment must be judged; extra ids in the response are
// ignored here (the merge stage diagnoses unknown ids).
func anchorScores(scores map[string]float64, comments []contribution.Comment) ([]scoring.RelevanceEntry, error) {
	entries := make([]scoring.RelevanceEntry, 0, len(comments))
	for _, c := range comments {
		raw, ok := scores[strconv.FormatInt(c.ID, 10)]
		if !ok {
			return nil, fmt.Errorf("openai: relevance response missing comment %d", c.ID)
		}
		score := decimal.NewFromFloat(raw)
		if score.GreaterThan(decimal.NewFromInt(1)) {
			score = decimal.NewFromInt(1)
		}
		entries = append(entries, scoring.RelevanceEntry{
			CommentID: c.ID,
			User:      c.User,
			Score:     score,
		})
	}
	return entries, nil
}

func buildPrompt(issue contribution.Issue, comments []contribution.Comment) (string, error) {
	type promptComment struct {
		ID   int64  `json:"id"`
		Body string `json:"body"`
	}
	payload := struct {
		IssueTitle string          `json:"issue_title"`
		IssueBody  string          `json:"issue_body"`
		Comments   []promptComment `json:"comments"`
	}{
		IssueTitle: issue.Title,
		IssueBody:  issue.Body,
	}
	for _, c := range comments {
		payload.Comments = append(payload.Comments, promptComment{ID: c.ID, Body: c.Body})
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("openai: marshal prompt: %w", err)
	}
	return string(b), nil
}

type relevanceScores struct {
	Scores map[string]float64 `json:"scores"`
}

type openaiRequest struct {
	Model          string                `json:"model"`
	Temperature    float64               `json:"temperature"`
	Messages       []openaiMessage       `json:"messages"`
	ResponseFormat *openaiResponseFormat `json:"response_format,omitempty"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponseFormat struct {
	Type string `json:"type"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}
