package rest

import (
	"context"
	"encoding/json"
	"fmt"
)

func (r *repo) GetRooms(ctx context.Context) (json.RawMessage, error) {
	var rooms json.RawMessage
	if err := r.getJSON(ctx, r.endpoint("rooms"), &rooms); err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	return rooms, nil
}

// Health returns the status reported by the backend health endpoint.
func (r *repo) Health(ctx context.Context) (string, error) {
	var resp healthResponse
	if err := r.getJSON(ctx, r.endpoint("health"), &resp); err != nil {
		return "", fmt.Errorf("failed to check health: %w", err)
	}

	return resp.Status, nil
}
