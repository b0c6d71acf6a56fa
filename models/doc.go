// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - VoteRequest: action, name, rankings (project name to rank 1-4)

A request with action "end_poll" ends the poll; name and rankings are
ignored. Any other request is a vote, whatever its action.

Rankings decode leniently: a rank that is not a whole number becomes 0
and scores nothing.

# Response Types

  - Results: isPollActive, scores, winner, rankCounts, allVotes, totalVotes
  - ErrorResponse: error

Scores is a Scoreboard, which encodes as a JSON object whose keys keep
the board's order (highest score first).

# Domain Types

  - Vote: one recorded submission
  - Rankings: project name to rank
  - ProjectScore: a project with its weighted score
  - RankCount: how many voters gave a project each rank

# Constants

The fixed project list:

	ProjectIdeas = []string{"Searce Bot", "Initial Structure Generation", ...}

Winner placeholders:

	WinnerInProgress = "Poll in progress..."
	WinnerNone       = "No clear winner"
*/
package models
