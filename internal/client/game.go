package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mcoot/whoosh/internal/model"
)

type joinQueueRequest struct {
	Queue string `json:"queue"`
}

// MatchHistory returns the current user's most recent matches
func (c *Client) MatchHistory(ctx context.Context) ([]model.MatchSummary, error) {
	resp, err := c.Do(ctx, EndpointMatchHistory, RequestOptions{})
	if err != nil {
		return nil, err
	}

	matches := []model.MatchSummary{}
	if _, err := decodeResponse(resp, &matches, msgHistoryFailed); err != nil {
		return nil, err
	}
	return matches, nil
}

// JoinQueue puts the current user in a matchmaking queue. An empty queue means model.DefaultQueue.
func (c *Client) JoinQueue(ctx context.Context, queue string) (*model.QueueTicket, error) {
	if queue == "" {
		queue = model.DefaultQueue
	}

	body, err := json.Marshal(joinQueueRequest{Queue: queue})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.Do(ctx, EndpointJoinQueue, RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	var ticket model.QueueTicket
	if _, err := decodeResponse(resp, &ticket, msgQueueFailed); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Health checks that the backend is up. No session is needed.
func (c *Client) Health(ctx context.Context) (*model.Health, error) {
	resp, err := c.send(ctx, EndpointHealth, RequestOptions{}, "", newRequestID())
	if err != nil {
		return nil, err
	}

	var health model.Health
	if _, err := decodeResponse(resp, &health, msgHealthFailed); err != nil {
		return nil, err
	}
	return &health, nil
}
