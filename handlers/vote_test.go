// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/rank-poll/models"
	"github.com/danielhkuo/rank-poll/poll"
	"github.com/danielhkuo/rank-poll/testutil"
)

func TestGetResults(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(t *testing.T, agg *poll.Aggregator)
		checkResponse func(t *testing.T, resp *models.Results)
	}{
		{
			name: "fresh poll",
			checkResponse: func(t *testing.T, resp *models.Results) {
				if !resp.IsPollActive {
					t.Error("Expected poll to be active")
				}
				if resp.TotalVotes != 0 {
					t.Errorf("Expected 0 votes, got %d", resp.TotalVotes)
				}
				if resp.Winner != models.WinnerInProgress {
					t.Errorf("Expected winner %q, got %q", models.WinnerInProgress, resp.Winner)
				}
				if len(resp.Scores) != len(models.ProjectIdeas) {
					t.Errorf("Expected %d scores, got %d", len(models.ProjectIdeas), len(resp.Scores))
				}
			},
		},
		{
			name: "active poll hides details",
			setup: func(t *testing.T, agg *poll.Aggregator) {
				testutil.SubmitTestVote(t, agg, "Alice", testutil.FullRanking())
				testutil.SubmitTestVote(t, agg, "Bob", testutil.FullRanking())
			},
			checkResponse: func(t *testing.T, resp *models.Results) {
				if resp.TotalVotes != 2 {
					t.Errorf("Expected 2 votes, got %d", resp.TotalVotes)
				}
				if len(resp.RankCounts) != 0 {
					t.Errorf("Expected empty rankCounts while active, got %v", resp.RankCounts)
				}
				if len(resp.AllVotes) != 0 {
					t.Errorf("Expected empty allVotes while active, got %v", resp.AllVotes)
				}
				if resp.Scores.Score("Searce Bot") != 8 {
					t.Errorf("Expected Searce Bot score 8, got %d", resp.Scores.Score("Searce Bot"))
				}
			},
		},
		{
			name: "ended poll reveals details",
			setup: func(t *testing.T, agg *poll.Aggregator) {
				testutil.SubmitTestVote(t, agg, "Alice", testutil.FullRanking())
				testutil.EndTestPoll(t, agg)
			},
			checkResponse: func(t *testing.T, resp *models.Results) {
				if resp.IsPollActive {
					t.Error("Expected poll to be ended")
				}
				if resp.Winner != "Searce Bot" {
					t.Errorf("Expected winner Searce Bot, got %q", resp.Winner)
				}
				if len(resp.AllVotes) != 1 || resp.AllVotes[0].Name != "Alice" {
					t.Errorf("Expected Alice's vote, got %v", resp.AllVotes)
				}
				if resp.RankCounts["AutoBug Fixer"][4] != 1 {
					t.Errorf("Expected AutoBug Fixer ranked 4th once, got %v", resp.RankCounts["AutoBug Fixer"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := testutil.NewTestAggregator()
			if tt.setup != nil {
				tt.setup(t, agg)
			}
			handler := NewVoteHandler(agg)

			w := httptest.NewRecorder()
			handler.GetResults(w, testutil.MakeRequest("GET", "/api/vote", nil, nil))

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.Results
			testutil.AssertJSON(t, w, &resp)
			tt.checkResponse(t, &resp)
		})
	}
}

func TestGetResults_WireFormat(t *testing.T) {
	agg := testutil.NewTestAggregator()
	handler := NewVoteHandler(agg)

	// AutoBug Fixer first, Searce Bot last
	testutil.SubmitTestVote(t, agg, "Alice", map[string]int{
		"AutoBug Fixer":                   1,
		"Self Documenting Codebase Agent": 2,
		"Initial Structure Generation":    3,
		"Searce Bot":                      4,
	})

	w := httptest.NewRecorder()
	handler.GetResults(w, testutil.MakeRequest("GET", "/api/vote", nil, nil))
	body := w.Body.String()

	for _, field := range []string{`"isPollActive":true`, `"rankCounts":{}`, `"allVotes":[]`, `"totalVotes":1`, `"winner":"Poll in progress..."`} {
		if !strings.Contains(body, field) {
			t.Errorf("Expected %s in body: %s", field, body)
		}
	}

	// Scores object keys are ordered by descending score
	first := strings.Index(body, `"AutoBug Fixer":4`)
	last := strings.Index(body, `"Searce Bot":1`)
	if first < 0 || last < 0 || first > last {
		t.Errorf("Expected scores ordered descending, got %s", body)
	}
}

func TestPostVote(t *testing.T) {
	tests := []struct {
		name           string
		ended          bool
		body           interface{}
		expectedStatus int
		expectedError  string
		expectedVotes  int
	}{
		{
			name:           "valid vote",
			body:           models.VoteRequest{Name: "Alice", Rankings: testutil.FullRanking()},
			expectedStatus: http.StatusOK,
			expectedVotes:  1,
		},
		{
			name:           "partial ranking accepted",
			body:           models.VoteRequest{Name: "Alice", Rankings: map[string]int{"Searce Bot": 1}},
			expectedStatus: http.StatusOK,
			expectedVotes:  1,
		},
		{
			name:           "missing name",
			body:           models.VoteRequest{Rankings: testutil.FullRanking()},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing name or rankings",
		},
		{
			name:           "missing rankings",
			body:           models.VoteRequest{Name: "Alice"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing name or rankings",
		},
		{
			name:           "empty object",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing name or rankings",
		},
		{
			name:           "unparseable body",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "non-integer ranks accepted",
			body:           `{"name":"Alice","rankings":{"Searce Bot":"first","AutoBug Fixer":1.5}}`,
			expectedStatus: http.StatusOK,
			expectedVotes:  1,
		},
		{
			name:           "other action without vote",
			body:           `{"action":"reopen"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing name or rankings",
		},
		{
			name:           "other action with vote",
			body:           `{"action":"vote","name":"Alice","rankings":{"Searce Bot":1}}`,
			expectedStatus: http.StatusOK,
			expectedVotes:  1,
		},
		{
			name:           "other action after poll ended",
			ended:          true,
			body:           `{"action":"vote","name":"Alice","rankings":{"Searce Bot":1}}`,
			expectedStatus: http.StatusForbidden,
			expectedError:  "The poll has ended and is no longer accepting votes.",
		},
		{
			name:           "rankings not an object",
			body:           `{"name":"Alice","rankings":5}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing name or rankings",
		},
		{
			name:           "vote after poll ended",
			ended:          true,
			body:           models.VoteRequest{Name: "Alice", Rankings: testutil.FullRanking()},
			expectedStatus: http.StatusForbidden,
			expectedError:  "The poll has ended and is no longer accepting votes.",
		},
		{
			name:           "invalid vote after poll ended",
			ended:          true,
			body:           `{}`,
			expectedStatus: http.StatusForbidden,
			expectedError:  "The poll has ended and is no longer accepting votes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := testutil.NewTestAggregator()
			if tt.ended {
				testutil.EndTestPoll(t, agg)
			}
			handler := NewVoteHandler(agg)

			w := httptest.NewRecorder()
			handler.PostVote(w, testutil.MakeRequest("POST", "/api/vote", tt.body, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedError != "" {
				testutil.AssertError(t, w, tt.expectedError)
			} else {
				var resp models.Results
				testutil.AssertJSON(t, w, &resp)
				if resp.TotalVotes != tt.expectedVotes {
					t.Errorf("Expected %d votes in response, got %d", tt.expectedVotes, resp.TotalVotes)
				}
			}

			res, err := agg.Results(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if res.TotalVotes != tt.expectedVotes {
				t.Errorf("Expected %d stored votes, got %d", tt.expectedVotes, res.TotalVotes)
			}
		})
	}
}

func TestPostVote_EndPoll(t *testing.T) {
	agg := testutil.NewTestAggregator()
	handler := NewVoteHandler(agg)

	testutil.SubmitTestVote(t, agg, "Alice", map[string]int{"Searce Bot": 1, "Initial Structure Generation": 2, "Self Documenting Codebase Agent": 3, "AutoBug Fixer": 4})
	testutil.SubmitTestVote(t, agg, "Bob", map[string]int{"Searce Bot": 2, "Initial Structure Generation": 1, "Self Documenting Codebase Agent": 4, "AutoBug Fixer": 3})

	// Ending twice is harmless and returns the same results
	var results []models.Results
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.PostVote(w, testutil.MakeRequest("POST", "/api/vote", models.VoteRequest{Action: models.ActionEndPoll}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.Results
		testutil.AssertJSON(t, w, &resp)
		results = append(results, resp)
	}

	for _, resp := range results {
		if resp.IsPollActive {
			t.Error("Expected poll to be ended")
		}
		if resp.TotalVotes != 2 {
			t.Errorf("Expected 2 votes, got %d", resp.TotalVotes)
		}
		// Searce Bot and Initial Structure Generation tie at 7; list order wins
		if resp.Winner != "Searce Bot" {
			t.Errorf("Expected winner Searce Bot, got %q", resp.Winner)
		}
		if resp.Scores.Score("Initial Structure Generation") != 7 {
			t.Errorf("Expected 7, got %d", resp.Scores.Score("Initial Structure Generation"))
		}
		if len(resp.AllVotes) != 2 {
			t.Errorf("Expected 2 votes revealed, got %d", len(resp.AllVotes))
		}
	}
}

func TestPostVote_EndPollWithoutVotes(t *testing.T) {
	handler := NewVoteHandler(testutil.NewTestAggregator())

	w := httptest.NewRecorder()
	handler.PostVote(w, testutil.MakeRequest("POST", "/api/vote", `{"action":"end_poll"}`, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.Results
	testutil.AssertJSON(t, w, &resp)
	if resp.Winner != models.WinnerNone {
		t.Errorf("Expected %q, got %q", models.WinnerNone, resp.Winner)
	}
	if resp.TotalVotes != 0 {
		t.Errorf("Expected 0 votes, got %d", resp.TotalVotes)
	}
}

func TestPostVote_NonIntegerRanksScoreZero(t *testing.T) {
	agg := testutil.NewTestAggregator()
	handler := NewVoteHandler(agg)

	w := httptest.NewRecorder()
	handler.PostVote(w, testutil.MakeRequest("POST", "/api/vote", `{"name":"Alice","rankings":{"Searce Bot":1.5,"AutoBug Fixer":1}}`, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	testutil.EndTestPoll(t, agg)
	res, err := agg.Results(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got := res.Scores.Score("AutoBug Fixer"); got != 4 {
		t.Errorf("Expected AutoBug Fixer score 4, got %d", got)
	}
	if got := res.Scores.Score("Searce Bot"); got != 0 {
		t.Errorf("Expected Searce Bot score 0, got %d", got)
	}
	if res.Winner != "AutoBug Fixer" {
		t.Errorf("Expected winner AutoBug Fixer, got %q", res.Winner)
	}
	if got := res.RankCounts["AutoBug Fixer"][1]; got != 1 {
		t.Errorf("Expected one first-place vote for AutoBug Fixer, got %d", got)
	}
	for rank, n := range res.RankCounts["Searce Bot"] {
		if n != 0 {
			t.Errorf("Expected no rank %d votes for Searce Bot, got %d", rank, n)
		}
	}
}

type brokenStore struct{}

func (brokenStore) Append(context.Context, models.Vote) error    { return errors.New("down") }
func (brokenStore) End(context.Context) error                    { return errors.New("down") }
func (brokenStore) Snapshot(context.Context) (poll.State, error) { return poll.State{Active: true}, nil }

func TestPostVote_StoreFailure(t *testing.T) {
	handler := NewVoteHandler(poll.NewAggregator(brokenStore{}))

	w := httptest.NewRecorder()
	handler.PostVote(w, testutil.MakeRequest("POST", "/api/vote", models.VoteRequest{Name: "Alice", Rankings: testutil.FullRanking()}, nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	testutil.AssertError(t, w, "Internal server error")
}
