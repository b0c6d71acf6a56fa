package models

import (
	"bytes"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// The fixed list of project ideas up for vote, in declaration order.
var ProjectIdeas = []string{
	"Searce Bot",
	"Initial Structure Generation",
	"Self Documenting Codebase Agent",
	"AutoBug Fixer",
}

// Poll control actions
const (
	ActionEndPoll = "end_poll"
)

// Winner placeholders
const (
	WinnerInProgress = "Poll in progress..."
	WinnerNone       = "No clear winner"
)

// Request types

// VoteRequest is the raw body of POST /api/vote. Action end_poll ends the
// poll; any other body is a vote carrying Name and Rankings.
type VoteRequest struct {
	Action   string   `json:"action,omitempty"`
	Name     string   `json:"name,omitempty"`
	Rankings Rankings `json:"rankings,omitempty"`
}

// Rankings maps a project name to the rank a voter gave it.
// Decoding is lenient: a rank that is not a whole number decodes as 0 and
// scores nothing, and a value that is not an object decodes as nil.
type Rankings map[string]int

func (r *Rankings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		*r = nil
		return nil
	}

	out := make(Rankings, len(raw))
	for project, value := range raw {
		out[project] = parseRank(value)
	}
	*r = out
	return nil
}

func parseRank(value json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(value, &f); err != nil {
		return 0
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// Domain types

type Vote struct {
	ID          string    `json:"-"`
	Name        string    `json:"name"`
	Rankings    Rankings  `json:"rankings"`
	SubmittedAt time.Time `json:"-"`
}

// RankCount maps a rank (1-4) to the number of voters who assigned it
type RankCount map[int]int

type ProjectScore struct {
	Project string
	Score   int
}

// Scoreboard is an ordered project -> score list. It marshals as a JSON
// object whose keys keep the slice order.
type Scoreboard []ProjectScore

func (s Scoreboard) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ps := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ps.Project)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(ps.Score))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a score object, ordering it by descending score.
// Ties are ordered by project name since object order is not preserved.
func (s *Scoreboard) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(Scoreboard, 0, len(m))
	for project, score := range m {
		out = append(out, ProjectScore{Project: project, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Project < out[j].Project
	})
	*s = out
	return nil
}

// Score returns the score for a project, or 0 if it is not on the board
func (s Scoreboard) Score(project string) int {
	for _, ps := range s {
		if ps.Project == project {
			return ps.Score
		}
	}
	return 0
}

// Response types

type Results struct {
	IsPollActive bool                 `json:"isPollActive"`
	Scores       Scoreboard           `json:"scores"`
	Winner       string               `json:"winner"`
	RankCounts   map[string]RankCount `json:"rankCounts"`
	AllVotes     []Vote               `json:"allVotes"`
	TotalVotes   int                  `json:"totalVotes"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
