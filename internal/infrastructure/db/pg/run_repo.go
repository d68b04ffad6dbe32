package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"rewardservice/internal/domain"
	"rewardservice/internal/domain/contribution"
	"rewardservice/internal/domain/reward"
)

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) SaveRun(ctx context.Context, run reward.Run) error {
	var exists bool
	if err := queryRow(ctx, r.db,
		`SELECT EXISTS(SELECT 1 FROM scoring_runs WHERE run_id = $1)`,
		run.ID,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return &domain.DomainError{
			Code:       domain.ErrorCodeRunExists,
			Message:    "scoring run already recorded",
			HTTPStatus: http.StatusConflict,
		}
	}

	if _, err := exec(ctx, r.db,
		`INSERT INTO scoring_runs (run_id, issue_id, issue_number, created_at)
		 VALUES ($1, $2, $3, $4)`,
		run.ID, run.IssueID, run.IssueNumber, run.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert scoring run: %w", err)
	}

	userIDs := make([]int64, 0, len(run.Totals))
	for id := range run.Totals {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	for _, userID := range userIDs {
		ct := run.Totals[userID]
		details, err := json.Marshal(ct.Details)
		if err != nil {
			return fmt.Errorf("marshal details for user %d: %w", userID, err)
		}
		if _, err := exec(ctx, r.db,
			`INSERT INTO scoring_run_totals (run_id, user_id, login, account_type, total, details)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			run.ID, ct.User.ID, ct.User.Login, string(ct.User.Type), ct.Total, string(details),
		); err != nil {
			return fmt.Errorf("insert total for user %d: %w", userID, err)
		}
	}
	return nil
}

func (r *RunRepository) ListRunsByIssue(ctx context.Context, issueID int64) ([]reward.Run, error) {
	rows, err := query(ctx, r.db,
		`SELECT run_id, issue_id, issue_number, created_at
		   FROM scoring_runs
		  WHERE issue_id = $1
		  ORDER BY created_at DESC`,
		issueID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []reward.Run
	for rows.Next() {
		var run reward.Run
		if err := rows.Scan(&run.ID, &run.IssueID, &run.IssueNumber, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		totals, err := r.loadTotals(ctx, runs[i])
		if err != nil {
			return nil, err
		}
		runs[i].Totals = totals
	}
	return runs, nil
}

func (r *RunRepository) loadTotals(ctx context.Context, run reward.Run) (reward.TotalsByContributor, error) {
	rows, err := query(ctx, r.db,
		`SELECT user_id, login, account_type, total, details
		   FROM scoring_run_totals
		  WHERE run_id = $1
		  ORDER BY user_id`,
		run.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(reward.TotalsByContributor)
	for rows.Next() {
		ct := &reward.ContributorTotal{}
		var accountType string
		var details []byte
		if err := rows.Scan(&ct.User.ID, &ct.User.Login, &accountType, &ct.Total, &details); err != nil {
			return nil, err
		}
		ct.User.Type = contribution.AccountType(accountType)
		if err := json.Unmarshal(details, &ct.Details); err != nil {
			return nil, fmt.Errorf("unmarshal details for user %d: %w", ct.User.ID, err)
		}
		totals[ct.User.ID] = ct
	}
	return totals, rows.Err()
}
