package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Type  string `json:"type"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	User      User      `json:"user"`
	ThreadID  string    `json:"thread_id"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Issue struct {
	ID        int64           `json:"id"`
	Number    int             `json:"number"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	User      User            `json:"user"`
	Assignees []User          `json:"assignees"`
	Price     decimal.Decimal `json:"price"`
	HTMLURL   string          `json:"html_url"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ScoreRunRequest struct {
	Issue          Issue     `json:"issue"`
	IssueComments  []Comment `json:"issue_comments"`
	ReviewComments []Comment `json:"review_comments"`
	Collaborators  []User    `json:"collaborators"`
}

type ScoreDetail struct {
	Kind  string          `json:"kind"`
	View  string          `json:"view"`
	Role  string          `json:"role"`
	Score decimal.Decimal `json:"score"`
}

type ContributorTotal struct {
	User    User            `json:"user"`
	Total   decimal.Decimal `json:"total"`
	Details []ScoreDetail   `json:"details"`
}

type ScoreRun struct {
	RunID     string                      `json:"run_id"`
	IssueID   int64                       `json:"issue_id"`
	CreatedAt time.Time                   `json:"created_at"`
	Totals    map[string]ContributorTotal `json:"totals"`
}

type RunsResponse struct {
	Runs []ScoreRun `json:"runs"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}
