// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/rank-poll/metrics"
	"github.com/danielhkuo/rank-poll/middleware"
	"github.com/danielhkuo/rank-poll/models"
	"github.com/danielhkuo/rank-poll/poll"
)

// Error messages returned to the voting page
const (
	msgInvalidBody   = "Invalid request body"
	msgMissingFields = "Missing name or rankings"
	msgPollClosed    = "The poll has ended and is no longer accepting votes."
	msgInternal      = "Internal server error"
)

type VoteHandler struct {
	poll *poll.Aggregator
}

func NewVoteHandler(agg *poll.Aggregator) *VoteHandler {
	return &VoteHandler{poll: agg}
}

// GetResults handles GET /api/vote
//
//	@Summary		Get current poll results
//	@Description	Current poll state, scores, and the winner once the poll has ended.
//	@Tags			Poll
//	@Produce		json
//	@Success		200	{object}	models.Results
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/api/vote [get]
func (h *VoteHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	res, err := h.poll.Results(r.Context())
	if err != nil {
		slog.Error("failed to compute results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgInternal)
		return
	}

	metrics.SetPollActive(res.IsPollActive)
	middleware.JSONResponse(w, http.StatusOK, res)
}

// PostVote handles POST /api/vote
// The body is {action: "end_poll"} or otherwise a vote {name, rankings}.
//
//	@Summary		Submit a vote or end the poll
//	@Description	Submit a vote with a name and rankings, or end the poll by sending {"action": "end_poll"}.
//	@Tags			Poll
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.VoteRequest	true	"Vote or end-poll action"
//	@Success		200		{object}	models.Results
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		403		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/api/vote [post]
func (h *VoteHandler) PostVote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		slog.Warn("invalid vote request body", "error", err)
		metrics.RecordVote(metrics.OutcomeInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	cmd := poll.ParseCommand(req)
	res, err := cmd.Apply(r.Context(), h.poll)
	if err != nil {
		h.writeCommandError(w, err)
		return
	}

	switch cmd.(type) {
	case poll.EndPollCommand:
		slog.Info("poll ended", "total_votes", res.TotalVotes, "winner", res.Winner)
	case poll.Submission:
		metrics.RecordVote(metrics.OutcomeAccepted)
		slog.Info("vote recorded", "name", req.Name, "total_votes", res.TotalVotes)
	}

	metrics.SetPollActive(res.IsPollActive)
	middleware.JSONResponse(w, http.StatusOK, res)
}

func (h *VoteHandler) writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, poll.ErrPollClosed):
		metrics.RecordVote(metrics.OutcomeClosed)
		middleware.ErrorResponse(w, http.StatusForbidden, msgPollClosed)
	case errors.Is(err, poll.ErrValidation):
		metrics.RecordVote(metrics.OutcomeInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, msgMissingFields)
	default:
		slog.Error("failed to apply poll command", "error", err)
		metrics.RecordVote(metrics.OutcomeError)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgInternal)
	}
}
