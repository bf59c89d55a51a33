// Gamification HTTP handlers.
//
// This file exposes the points-economy endpoints:
//   - GET  /challenges               (active challenges + completion marks)
//   - POST /challenges/{id}/complete (complete and credit points)
//   - GET  /ranking                  (individual ranking, ETag support)
//   - GET  /teams/ranking            (aggregated team ranking)
//   - GET  /teams                    (list teams)
//   - POST /teams/{id}/join          (join a team)
//   - GET  /levels                   (the level ladder)
//   - POST /admin/challenges         (create challenge)
//   - PUT  /admin/challenges/{id}    (activate/deactivate)
//   - POST /admin/teams              (create team)
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/http/middleware"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/services"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/utils"
)

// CreateChallengeRequest is the JSON payload for creating a challenge.
type CreateChallengeRequest struct {
	Title       string `json:"title" binding:"required" example:"Primeiro acesso"`
	Description string `json:"description" example:"Faça login no portal pela primeira vez."`
	Points      int    `json:"points" binding:"min=0" example:"25"`
}

// SetChallengeActiveRequest toggles a challenge's visibility.
type SetChallengeActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// CreateTeamRequest is the JSON payload for creating a team.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required" example:"Azul"`
}

// ChallengeView is a challenge plus the caller's completion mark.
type ChallengeView struct {
	domain.Challenge
	Done bool `json:"done"`
}

// ListChallenges godoc
// @ID          listChallenges
// @Summary     List active challenges
// @Description Returns active challenges, each flagged with whether the caller already completed it.
// @Tags        Gamification
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   handlers.ChallengeView
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /challenges [get]
func (h *Handlers) ListChallenges(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	ctx := c.Request.Context()

	challenges, err := h.Game.Challenges(ctx, true)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	doneIDs, err := h.Game.CompletedIDs(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	done := make(map[string]bool, len(doneIDs))
	for _, id := range doneIDs {
		done[id] = true
	}

	views := make([]ChallengeView, len(challenges))
	for i, ch := range challenges {
		views[i] = ChallengeView{Challenge: ch, Done: done[ch.ID]}
	}
	ok(c, http.StatusOK, views)
}

// CompleteChallenge godoc
// @ID          completeChallenge
// @Summary     Complete a challenge
// @Description Records the completion and credits the challenge's points. Repeating a challenge returns 409.
// @Tags        Gamification
// @Produce     json
// @Security    BearerAuth
//
// @Param       id path string true "Challenge ID (UUID)" format(uuid)
//
// @Success     200  {object}  domain.Challenge
// @Failure     404  {object}  handlers.ErrorResponse "Challenge not found"
// @Failure     409  {object}  handlers.ErrorResponse "Already completed"
// @Failure     410  {object}  handlers.ErrorResponse "Challenge inactive"
// @Router      /challenges/{id}/complete [post]
func (h *Handlers) CompleteChallenge(c *gin.Context) {
	uid, _ := middleware.UserID(c)

	ch, err := h.Game.CompleteChallenge(c.Request.Context(), uid, c.Param("id"))
	switch {
	case errors.Is(err, services.ErrChallengeNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "challenge not found")
		return
	case errors.Is(err, services.ErrChallengeInactive):
		fail(c, http.StatusGone, ErrCodeConflict, "challenge is no longer active")
		return
	case errors.Is(err, services.ErrChallengeDone):
		fail(c, http.StatusConflict, ErrCodeConflict, "challenge already completed")
		return
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ch)
}

// Ranking godoc
// @ID          ranking
// @Summary     Individual ranking
// @Description Returns users ordered by points with level names resolved. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Gamification
// @Produce     json
// @Security    BearerAuth
//
// @Param       limit          query   int     false "Max rows (0 = all)"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}   services.RankedUser
// @Header      200  {string}  ETag "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /ranking [get]
func (h *Handlers) Ranking(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if count, maxTS, err := repo.RankingStats(ctx, h.DB); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"ranking:%d:%d"`, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	limit := utils.AtoiDefault(c.Query("limit"), 0)
	if limit < 0 {
		limit = 0
	}
	rank, err := h.Game.Ranking(ctx, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rank)
}

// TeamRanking godoc
// @ID          teamRanking
// @Summary     Team ranking
// @Description Returns teams ordered by summed member points.
// @Tags        Gamification
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   repo.TeamScore
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /teams/ranking [get]
func (h *Handlers) TeamRanking(c *gin.Context) {
	scores, err := h.Game.TeamRanking(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, scores)
}

// ListTeams godoc
// @ID          listTeams
// @Summary     List teams
// @Tags        Gamification
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   domain.Team
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /teams [get]
func (h *Handlers) ListTeams(c *gin.Context) {
	teams, err := h.Game.Teams(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, teams)
}

// JoinTeam godoc
// @ID          joinTeam
// @Summary     Join a team
// @Tags        Gamification
// @Produce     json
// @Security    BearerAuth
//
// @Param       id path string true "Team ID (UUID)" format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Team not found"
// @Router      /teams/{id}/join [post]
func (h *Handlers) JoinTeam(c *gin.Context) {
	uid, _ := middleware.UserID(c)

	err := h.Game.JoinTeam(c.Request.Context(), uid, c.Param("id"))
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "team not found")
		return
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// ListLevels godoc
// @ID          listLevels
// @Summary     List the level ladder
// @Tags        Gamification
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   domain.Level
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /levels [get]
func (h *Handlers) ListLevels(c *gin.Context) {
	levels, err := h.Game.Levels(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, levels)
}

// CreateChallenge godoc
// @ID          createChallenge
// @Summary     Create a challenge
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body body handlers.CreateChallengeRequest true "Challenge payload"
//
// @Success     201  {object}  domain.Challenge
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /admin/challenges [post]
func (h *Handlers) CreateChallenge(c *gin.Context) {
	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and non-negative points are required")
		return
	}
	ch, err := h.Game.CreateChallenge(c.Request.Context(), req.Title, req.Description, req.Points)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, ch)
}

// SetChallengeActive godoc
// @ID          setChallengeActive
// @Summary     Activate or deactivate a challenge
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id   path string                                true "Challenge ID (UUID)" format(uuid)
// @Param       body body handlers.SetChallengeActiveRequest    true "Active flag"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Challenge not found"
// @Router      /admin/challenges/{id} [put]
func (h *Handlers) SetChallengeActive(c *gin.Context) {
	var req SetChallengeActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "active flag is required")
		return
	}
	err := h.Game.SetChallengeActive(c.Request.Context(), c.Param("id"), *req.Active)
	switch {
	case errors.Is(err, services.ErrChallengeNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "challenge not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// CreateTeam godoc
// @ID          createTeam
// @Summary     Create a team
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body body handlers.CreateTeamRequest true "Team payload"
//
// @Success     201  {object}  domain.Team
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse "Name already exists"
// @Router      /admin/teams [post]
func (h *Handlers) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name is required")
		return
	}
	team, err := h.Game.CreateTeam(c.Request.Context(), req.Name)
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		fail(c, http.StatusConflict, ErrCodeConflict, "team name already exists")
		return
	case err != nil:
		fail(c, http.StatusBadRequest, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, team)
}
