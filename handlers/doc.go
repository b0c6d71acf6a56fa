// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Rank Poll API.

# Vote Handler

VoteHandler serves /api/vote on top of a poll.Aggregator:

	voteHandler := handlers.NewVoteHandler(agg)

	GET  /api/vote → GetResults
	POST /api/vote → PostVote

# Error Mapping

PostVote decodes the body into a poll.Command and applies it. A body
with action "end_poll" ends the poll; any other body is a vote, whatever
its action. Errors map to statuses as follows:

	malformed JSON          400 "Invalid request body"
	poll.ErrPollClosed      403 "The poll has ended and is no longer accepting votes."
	poll.ErrValidation      400 "Missing name or rankings"
	anything else           500 "Internal server error"

A closed poll is reported before the body is validated. Every outcome is
counted in rankpoll_votes_total.
*/
package handlers
