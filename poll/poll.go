// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/danielhkuo/rank-poll/models"
)

var (
	ErrValidation = errors.New("missing name or rankings")
	ErrPollClosed = errors.New("poll has ended")
)

var validate = validator.New()

// Aggregator owns a single poll: it records votes, ends the poll, and
// computes results from whatever its Store holds.
type Aggregator struct {
	store    Store
	projects []string
	tieBreak TieBreak
	now      func() time.Time
}

type Option func(*Aggregator)

// WithTieBreak sets the rule used to order tied projects
func WithTieBreak(tb TieBreak) Option {
	return func(a *Aggregator) { a.tieBreak = tb }
}

// WithProjects overrides the project list
func WithProjects(projects []string) Option {
	return func(a *Aggregator) { a.projects = projects }
}

// WithClock overrides the clock used to stamp votes
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func NewAggregator(store Store, opts ...Option) *Aggregator {
	a := &Aggregator{
		store:    store,
		projects: models.ProjectIdeas,
		tieBreak: TieBreakDeclared,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Submit records a vote and returns the updated results.
// An ended poll rejects every submission with ErrPollClosed, before any
// validation of the submission itself.
func (a *Aggregator) Submit(ctx context.Context, sub Submission) (models.Results, error) {
	state, err := a.store.Snapshot(ctx)
	if err != nil {
		return models.Results{}, fmt.Errorf("failed to read poll state: %w", err)
	}
	if !state.Active {
		return models.Results{}, ErrPollClosed
	}

	if err := validate.Struct(sub); err != nil {
		return models.Results{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	vote := models.Vote{
		ID:          uuid.NewString(),
		Name:        sub.Name,
		Rankings:    sub.Rankings,
		SubmittedAt: a.now(),
	}
	if err := a.store.Append(ctx, vote); err != nil {
		if errors.Is(err, ErrPollClosed) {
			return models.Results{}, ErrPollClosed
		}
		return models.Results{}, fmt.Errorf("failed to record vote: %w", err)
	}

	return a.Results(ctx)
}

// End closes the poll. Calling it on an ended poll is a no-op.
func (a *Aggregator) End(ctx context.Context) (models.Results, error) {
	if err := a.store.End(ctx); err != nil {
		return models.Results{}, fmt.Errorf("failed to end poll: %w", err)
	}
	return a.Results(ctx)
}

// Results computes the current results. While the poll is active the
// winner, rank counts and individual votes are withheld.
func (a *Aggregator) Results(ctx context.Context) (models.Results, error) {
	state, err := a.store.Snapshot(ctx)
	if err != nil {
		return models.Results{}, fmt.Errorf("failed to read poll state: %w", err)
	}
	return a.build(state), nil
}

func (a *Aggregator) build(state State) models.Results {
	tally := ComputeTally(a.projects, state.Votes, a.tieBreak)

	res := models.Results{
		IsPollActive: state.Active,
		Scores:       tally.Scores,
		TotalVotes:   len(state.Votes),
	}

	if state.Active {
		res.Winner = models.WinnerInProgress
		res.RankCounts = map[string]models.RankCount{}
		res.AllVotes = []models.Vote{}
		return res
	}

	res.Winner = Winner(tally.Scores)
	res.RankCounts = tally.RankCounts
	res.AllVotes = state.Votes
	if res.AllVotes == nil {
		res.AllVotes = []models.Vote{}
	}
	return res
}
