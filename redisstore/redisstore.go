// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/rank-poll/models"
	"github.com/danielhkuo/rank-poll/poll"
)

const stateEnded = "ended"

// appendScript pushes a vote unless the poll has ended.
// KEYS[1] = state key, KEYS[2] = votes list,
// ARGV[1] = encoded vote, ARGV[2] = ended marker.
var appendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[2] then
	return 0
end
redis.call("RPUSH", KEYS[2], ARGV[1])
return 1
`)

// storedVote is the JSON form of a vote in the list
type storedVote struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Rankings    map[string]int `json:"rankings"`
	SubmittedAt int64          `json:"submitted_at"`
}

// Store keeps the poll in Redis so several server instances share one poll
type Store struct {
	rdb      redis.UniversalClient
	stateKey string
	votesKey string
}

// New returns a Store whose keys live under prefix
func New(rdb redis.UniversalClient, prefix string) *Store {
	return &Store{
		rdb:      rdb,
		stateKey: prefix + ":state",
		votesKey: prefix + ":votes",
	}
}

// Connect opens a client and checks it with PING
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func (s *Store) Append(ctx context.Context, vote models.Vote) error {
	payload, err := json.Marshal(storedVote{
		ID:          vote.ID,
		Name:        vote.Name,
		Rankings:    vote.Rankings,
		SubmittedAt: vote.SubmittedAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode vote: %w", err)
	}

	ok, err := appendScript.Run(ctx, s.rdb, []string{s.stateKey, s.votesKey}, payload, stateEnded).Int()
	if err != nil {
		return fmt.Errorf("failed to append vote: %w", err)
	}
	if ok == 0 {
		return poll.ErrPollClosed
	}
	return nil
}

func (s *Store) End(ctx context.Context) error {
	if err := s.rdb.Set(ctx, s.stateKey, stateEnded, 0).Err(); err != nil {
		return fmt.Errorf("failed to end poll: %w", err)
	}
	return nil
}

func (s *Store) Snapshot(ctx context.Context) (poll.State, error) {
	var stateCmd *redis.StringCmd
	var votesCmd *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		stateCmd = pipe.Get(ctx, s.stateKey)
		votesCmd = pipe.LRange(ctx, s.votesKey, 0, -1)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return poll.State{}, fmt.Errorf("failed to read poll: %w", err)
	}

	state, err := stateCmd.Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return poll.State{}, fmt.Errorf("failed to read poll state: %w", err)
	}

	raw, err := votesCmd.Result()
	if err != nil {
		return poll.State{}, fmt.Errorf("failed to read votes: %w", err)
	}

	votes := make([]models.Vote, 0, len(raw))
	for _, item := range raw {
		var sv storedVote
		if err := json.Unmarshal([]byte(item), &sv); err != nil {
			return poll.State{}, fmt.Errorf("failed to decode vote: %w", err)
		}
		votes = append(votes, models.Vote{
			ID:          sv.ID,
			Name:        sv.Name,
			Rankings:    sv.Rankings,
			SubmittedAt: time.Unix(0, sv.SubmittedAt),
		})
	}

	return poll.State{Active: state != stateEnded, Votes: votes}, nil
}

// Reset deletes the poll's keys, returning it to an active poll with no votes
func (s *Store) Reset(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.stateKey, s.votesKey).Err(); err != nil {
		return fmt.Errorf("failed to reset poll: %w", err)
	}
	return nil
}
