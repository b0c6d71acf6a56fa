// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"context"

	"github.com/danielhkuo/rank-poll/models"
)

// Command is one of Submission or EndPollCommand
type Command interface {
	Apply(ctx context.Context, a *Aggregator) (models.Results, error)
}

// Submission is a voter's ranked ballot
type Submission struct {
	Name     string          `validate:"required"`
	Rankings models.Rankings `validate:"required,min=1"`
}

func (s Submission) Apply(ctx context.Context, a *Aggregator) (models.Results, error) {
	return a.Submit(ctx, s)
}

// EndPollCommand closes the poll
type EndPollCommand struct{}

func (EndPollCommand) Apply(ctx context.Context, a *Aggregator) (models.Results, error) {
	return a.End(ctx)
}

// ParseCommand discriminates a request body on its action field.
// Anything other than end_poll is a submission; the submission itself is
// validated when applied, after the poll state check.
func ParseCommand(req models.VoteRequest) Command {
	if req.Action == models.ActionEndPoll {
		return EndPollCommand{}
	}
	return Submission{Name: req.Name, Rankings: req.Rankings}
}
