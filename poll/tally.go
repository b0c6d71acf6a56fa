// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/rank-poll/models"
)

// TieBreak decides the order of projects with equal scores
type TieBreak string

const (
	// TieBreakDeclared keeps tied projects in project list order
	TieBreakDeclared TieBreak = "declared"
	// TieBreakAlphabetical orders tied projects by name
	TieBreakAlphabetical TieBreak = "alphabetical"
)

// ParseTieBreak converts a config string into a TieBreak
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(s) {
	case "", TieBreakDeclared:
		return TieBreakDeclared, nil
	case TieBreakAlphabetical:
		return TieBreakAlphabetical, nil
	default:
		return "", fmt.Errorf("unknown tie-break rule %q", s)
	}
}

// rankWeights maps a rank to the points it awards. Ranks not present award 0.
var rankWeights = map[int]int{1: 4, 2: 3, 3: 2, 4: 1}

// Weight returns the points awarded for a rank
func Weight(rank int) int {
	return rankWeights[rank]
}

// Tally holds the scoreboard and rank breakdown computed from a vote list
type Tally struct {
	Scores     models.Scoreboard
	RankCounts map[string]models.RankCount
}

// ComputeTally scores votes against the project list. Rankings for unknown
// projects and ranks outside 1-4 are ignored. Scores are sorted descending
// with ties ordered by tieBreak.
func ComputeTally(projects []string, votes []models.Vote, tieBreak TieBreak) Tally {
	scores := make(map[string]int, len(projects))
	counts := make(map[string]models.RankCount, len(projects))
	for _, p := range projects {
		scores[p] = 0
		counts[p] = models.RankCount{1: 0, 2: 0, 3: 0, 4: 0}
	}

	for _, v := range votes {
		for project, rank := range v.Rankings {
			if _, known := scores[project]; !known {
				continue
			}
			w := Weight(rank)
			if w == 0 {
				continue
			}
			scores[project] += w
			counts[project][rank]++
		}
	}

	board := make(models.Scoreboard, len(projects))
	for i, p := range projects {
		board[i] = models.ProjectScore{Project: p, Score: scores[p]}
	}

	// Stable sort keeps declaration order among ties
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Score != board[j].Score {
			return board[i].Score > board[j].Score
		}
		if tieBreak == TieBreakAlphabetical {
			return board[i].Project < board[j].Project
		}
		return false
	})

	return Tally{Scores: board, RankCounts: counts}
}

// Winner returns the top project of a sorted scoreboard, or
// models.WinnerNone when the board is empty or the top score is zero.
func Winner(board models.Scoreboard) string {
	if len(board) == 0 || board[0].Score <= 0 {
		return models.WinnerNone
	}
	return board[0].Project
}
