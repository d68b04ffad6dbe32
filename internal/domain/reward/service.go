package reward

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rewardservice/internal/domain"
	"rewardservice/internal/domain/contribution"
	"rewardservice/internal/domain/scoring"
)

type ScoreRequest struct {
	Issue          contribution.Issue
	IssueComments  []contribution.Comment
	ReviewComments []contribution.Comment
	Collaborators  []contribution.User
}

type Service interface {
	ScoreIssue(ctx context.Context, req ScoreRequest) (Run, error)
	GetRuns(ctx context.Context, issueID int64) ([]Run, error)
}

type service struct {
	uow       domain.UnitOfWork
	runs      Repository
	engine    *scoring.Engine
	relevance RelevanceScorer
	events    domain.EventBus
	log       *zap.Logger

	defaultTaskPrice decimal.Decimal
}

func NewService(
	uow domain.UnitOfWork,
	runs Repository,
	engine *scoring.Engine,
	relevance RelevanceScorer,
	events domain.EventBus,
	log *zap.Logger,
	defaultTaskPrice decimal.Decimal,
) Service {
	return &service{
		uow:              uow,
		runs:             runs,
		engine:           engine,
		relevance:        relevance,
		events:           events,
		log:              log,
		defaultTaskPrice: defaultTaskPrice,
	}
}

// ScoreIssue runs the full pipeline for one closed issue: classification,
// per-source scoring, totals aggregation, and run persistence. The relevance
// judge failing aborts the run before any totals exist.
func (s *service) ScoreIssue(ctx context.Context, req ScoreRequest) (Run, error) {
	issueComments := contribution.FilterComments(req.IssueComments)
	reviewComments := contribution.FilterComments(req.ReviewComments)

	var details []UserScoreDetail

	details = append(details, s.specificationScoring(req.Issue, req.Collaborators)...)
	details = append(details, s.taskScoring(req.Issue)...)

	issueDetails, err := s.commentsScoring(ctx, req.Issue, issueComments, contribution.ViewIssue, req.Collaborators)
	if err != nil {
		return Run{}, err
	}
	details = append(details, issueDetails...)

	reviewDetails, err := s.commentsScoring(ctx, req.Issue, reviewComments, contribution.ViewReview, req.Collaborators)
	if err != nil {
		return Run{}, err
	}
	details = append(details, reviewDetails...)

	run := Run{
		ID:          uuid.New(),
		IssueID:     req.Issue.ID,
		IssueNumber: req.Issue.Number,
		Totals:      SumTotals(details),
		CreatedAt:   time.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		return s.runs.SaveRun(ctx, run)
	})
	if err != nil {
		return Run{}, err
	}

	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type: "scoring.run.completed",
			Payload: map[string]any{
				"run_id":       run.ID.String(),
				"issue_id":     run.IssueID,
				"contributors": len(run.Totals),
			},
		})
	}

	return run, nil
}

func (s *service) GetRuns(ctx context.Context, issueID int64) ([]Run, error) {
	return s.runs.ListRunsByIssue(ctx, issueID)
}

// specificationScoring scores the issue body as the issuer's specification.
// Relevance is synthetic: the specification is fully relevant to itself.
func (s *service) specificationScoring(issue contribution.Issue, collaborators []contribution.User) []UserScoreDetail {
	specComment := issue.AsComment()
	comments := []contribution.Comment{specComment}

	roles := contribution.ClassifyRoles(issue, comments, collaborators)
	accs := s.engine.ScoreComments(roles, comments, contribution.ViewIssue)
	s.engine.MergeRelevance([]scoring.RelevanceEntry{
		{CommentID: specComment.ID, User: issue.User, Score: decimal.NewFromInt(1)},
	}, accs)

	var details []UserScoreDetail
	for _, acc := range accs {
		if acc.Class != contribution.IssueIssuerComment {
			continue
		}
		us, ok := acc.CommentScores[issue.User.ID]
		if !ok {
			continue
		}
		details = append(details, UserScoreDetail{
			Score:   us.TotalScoreTotal,
			View:    contribution.ViewIssue,
			Role:    contribution.RoleIssuer,
			Kind:    contribution.KindSpecification,
			Scoring: ScoringRefs{Specification: acc},
			Source:  Source{Issue: issue, User: issue.User},
		})
	}
	return details
}

// taskScoring splits the task value evenly among assignees.
func (s *service) taskScoring(issue contribution.Issue) []UserScoreDetail {
	assignees := contribution.ClassifyRoles(issue, nil, nil).Assignees
	if len(assignees) == 0 {
		s.log.Info("no assignees, task not scored", zap.Int64("issue_id", issue.ID))
		return nil
	}

	price := issue.Price
	if price.IsZero() {
		price = s.defaultTaskPrice
	}
	share := price.DivRound(decimal.NewFromInt(int64(len(assignees))), 3)

	details := make([]UserScoreDetail, 0, len(assignees))
	for _, assignee := range assignees {
		details = append(details, UserScoreDetail{
			Score:   share,
			View:    contribution.ViewIssue,
			Role:    contribution.RoleAssignee,
			Kind:    contribution.KindTask,
			Scoring: ScoringRefs{Task: &share},
			Source:  Source{Issue: issue, User: assignee},
		})
	}
	return details
}

// commentsScoring scores one view's filtered comments: format dimensions per
// comment, then one relevance batch merged in by comment identity.
func (s *service) commentsScoring(
	ctx context.Context,
	issue contribution.Issue,
	comments []contribution.Comment,
	view contribution.View,
	collaborators []contribution.User,
) ([]UserScoreDetail, error) {
	if len(comments) == 0 {
		s.log.Info("no comments to score",
			zap.Int64("issue_id", issue.ID),
			zap.String("view", string(view)),
		)
		return nil, nil
	}

	relevance, err := s.relevance.ScoreComments(ctx, issue, comments)
	if err != nil {
		return nil, &domain.DomainError{
			Code:       domain.ErrorCodeRelevanceFailed,
			Message:    "relevance scoring failed",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}

	roles := contribution.ClassifyRoles(issue, comments, collaborators)
	accs := s.engine.ScoreComments(roles, comments, view)
	s.engine.MergeRelevance(relevance, accs)

	var details []UserScoreDetail
	for _, acc := range accs {
		for _, userID := range sortedUserIDs(acc) {
			us := acc.CommentScores[userID]
			refs := ScoringRefs{}
			if view == contribution.ViewIssue {
				refs.IssueComments = acc
			} else {
				refs.ReviewComments = acc
			}
			details = append(details, UserScoreDetail{
				Score:   us.TotalScoreTotal,
				View:    view,
				Role:    acc.Class.Role(),
				Kind:    contribution.KindComment,
				Scoring: refs,
				Source:  Source{Issue: issue, User: us.User},
			})
		}
	}
	return details, nil
}

// sortedUserIDs fixes detail order per accumulator so runs are reproducible.
func sortedUserIDs(acc *scoring.Accumulator) []int64 {
	ids := make([]int64, 0, len(acc.CommentScores))
	for id := range acc.CommentScores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
