package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rewardservice/internal/app/dto"
	"rewardservice/internal/domain/contribution"
	"rewardservice/internal/domain/reward"
)

func (h *Handler) ScoreRun(c *gin.Context) {
	var body dto.ScoreRunRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	if body.Issue.ID == 0 || body.Issue.User.ID == 0 {
		h.badRequest(c, "issue with id and author is required")
		return
	}

	req := reward.ScoreRequest{
		Issue:          issueFromDTO(body.Issue),
		IssueComments:  commentsFromDTO(body.IssueComments),
		ReviewComments: commentsFromDTO(body.ReviewComments),
		Collaborators:  usersFromDTO(body.Collaborators),
	}

	run, err := h.RewardSvc.ScoreIssue(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, runToDTO(run))
}

func (h *Handler) ScoreRuns(c *gin.Context) {
	issueID, err := strconv.ParseInt(c.Param("issue_id"), 10, 64)
	if err != nil {
		h.badRequest(c, "issue_id must be an integer")
		return
	}

	runs, err := h.RewardSvc.GetRuns(c.Request.Context(), issueID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.RunsResponse{Runs: make([]dto.ScoreRun, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, runToDTO(run))
	}
	c.JSON(http.StatusOK, resp)
}

func userFromDTO(u dto.User) contribution.User {
	return contribution.User{
		ID:    u.ID,
		Login: u.Login,
		Type:  contribution.AccountType(u.Type),
	}
}

func usersFromDTO(users []dto.User) []contribution.User {
	res := make([]contribution.User, 0, len(users))
	for _, u := range users {
		res = append(res, userFromDTO(u))
	}
	return res
}

func commentsFromDTO(comments []dto.Comment) []contribution.Comment {
	res := make([]contribution.Comment, 0, len(comments))
	for _, c := range comments {
		res = append(res, contribution.Comment{
			ID:        c.ID,
			Body:      c.Body,
			User:      userFromDTO(c.User),
			ThreadID:  c.ThreadID,
			HTMLURL:   c.HTMLURL,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return res
}

func issueFromDTO(i dto.Issue) contribution.Issue {
	return contribution.Issue{
		ID:        i.ID,
		Number:    i.Number,
		Title:     i.Title,
		Body:      i.Body,
		User:      userFromDTO(i.User),
		Assignees: usersFromDTO(i.Assignees),
		Price:     i.Price,
		HTMLURL:   i.HTMLURL,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func runToDTO(run reward.Run) dto.ScoreRun {
	totals := make(map[string]dto.ContributorTotal, len(run.Totals))
	for userID, ct := range run.Totals {
		details := make([]dto.ScoreDetail, 0, len(ct.Details))
		for _, d := range ct.Details {
			details = append(details, dto.ScoreDetail{
				Kind:  string(d.Kind),
				View:  string(d.View),
				Role:  string(d.Role),
				Score: d.Score,
			})
		}
		totals[strconv.FormatInt(userID, 10)] = dto.ContributorTotal{
			User: dto.User{
				ID:    ct.User.ID,
				Login: ct.User.Login,
				Type:  string(ct.User.Type),
			},
			Total:   ct.Total,
			Details: details,
		}
	}
	return dto.ScoreRun{
		RunID:     run.ID.String(),
		IssueID:   run.IssueID,
		CreatedAt: run.CreatedAt,
		Totals:    totals,
	}
}
