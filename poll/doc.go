// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements the single ranked poll: vote recording, the
active → ended lifecycle, and weighted score aggregation.

# Lifecycle

A poll starts active and ends once, via End. There is no way back:

	agg := poll.NewAggregator(poll.NewMemoryStore())
	res, err := agg.Submit(ctx, poll.Submission{Name: "Alice", Rankings: r})
	res, err = agg.End(ctx)

Submit on an ended poll fails with ErrPollClosed. End on an ended poll
is harmless.

# Scoring

Each vote awards points per project by rank:

	rank 1 → 4 points
	rank 2 → 3 points
	rank 3 → 2 points
	rank 4 → 1 point

Any other rank, or a project not in the project list, awards nothing.
Rankings are not checked for completeness or duplicate ranks.

Scores are ordered descending. Ties are ordered by the TieBreak rule:
TieBreakDeclared (project list order, default) or TieBreakAlphabetical.

# Sealed Results

Results always carry the scoreboard and vote count. The winner, per-rank
counts and individual votes are only filled in once the poll has ended.
The winner is the top project, or "No clear winner" when the top score
is zero.

# Storage

The Aggregator reads and writes through a Store. MemoryStore keeps the
poll in process, so each server process runs its own poll. The redisstore
and db packages provide shared stores for running several instances.
*/
package poll
