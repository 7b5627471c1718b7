// Package gameapi provides structures and utilities for managing game match requests and responses.
package gameapi

// MatchRequest represents a request to join the matchmaking pool. SentAt
// is the client's send timestamp in Unix milliseconds, used to estimate
// latency.
type MatchRequest struct {
	SentAt int64 `json:"sent_at" binding:"required"`
}

// MatchInfoResponse points a matched player at their round's realtime
// endpoint.
type MatchInfoResponse struct {
	SocketAddr string `json:"socket_addr"`
}
