// Package contribution models the participants and discussion records of a
// closed issue and classifies them into contribution classes.
package contribution

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeUser AccountType = "User"
	AccountTypeBot  AccountType = "Bot"
)

type User struct {
	ID    int64       `json:"id"`
	Login string      `json:"login"`
	Type  AccountType `json:"type"`
}

func (u User) IsHuman() bool {
	return u.Type == AccountTypeUser
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

// AsComment represents the issue specification as a scorable comment record.
func (i Issue) AsComment() Comment {
	return Comment{
		ID:        i.ID,
		Body:      i.Body,
		User:      i.User,
		ThreadID:  i.HTMLURL,
		HTMLURL:   i.HTMLURL,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// IsHumanNonCommand reports whether a comment should enter classification:
// authored by a human account and not a slash command.
func IsHumanNonCommand(c Comment) bool {
	return !strings.HasPrefix(c.Body, "/") && c.User.IsHuman()
}

// FilterComments returns the comments that pass IsHumanNonCommand,
// preserving order.
func FilterComments(comments []Comment) []Comment {
	res := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if IsHumanNonCommand(c) {
			res = append(res, c)
		}
	}
	return res
}
