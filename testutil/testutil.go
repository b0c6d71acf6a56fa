// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/danielhkuo/rank-poll/models"
	"github.com/danielhkuo/rank-poll/poll"
)

// NewTestAggregator returns an aggregator over a fresh in-memory poll
func NewTestAggregator() *poll.Aggregator {
	return poll.NewAggregator(poll.NewMemoryStore())
}

// FullRanking ranks every project idea in declaration order (1..4)
func FullRanking() models.Rankings {
	rankings := make(models.Rankings, len(models.ProjectIdeas))
	for i, p := range models.ProjectIdeas {
		rankings[p] = i + 1
	}
	return rankings
}

// SubmitTestVote records a vote directly through the aggregator
func SubmitTestVote(t *testing.T, agg *poll.Aggregator, name string, rankings models.Rankings) {
	t.Helper()

	if _, err := agg.Submit(context.Background(), poll.Submission{Name: name, Rankings: rankings}); err != nil {
		t.Fatalf("Failed to submit test vote: %v", err)
	}
}

// EndTestPoll ends the poll directly through the aggregator
func EndTestPoll(t *testing.T, agg *poll.Aggregator) {
	t.Helper()

	if _, err := agg.End(context.Background()); err != nil {
		t.Fatalf("Failed to end test poll: %v", err)
	}
}

// MakeRequest creates an HTTP test request. A string body is sent verbatim,
// anything else is JSON encoded.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError decodes an error response and checks its message
func AssertError(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != expected {
		t.Errorf("Expected error %q, got %q", expected, resp.Error)
	}
}
