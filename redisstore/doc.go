// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package redisstore provides a Redis-backed poll store so several server
instances can share one poll.

# Keys

Under a configurable prefix (default "rankpoll"):

	<prefix>:state  string, "ended" once the poll has ended, absent while active
	<prefix>:votes  list of JSON-encoded votes in submission order

# Atomic Submission

Votes are appended by a Lua script that checks the state key first, so
no vote lands after the poll ended, even with many writers.
*/
package redisstore
