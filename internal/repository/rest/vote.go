package rest

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetCandidates returns the raw candidates document of a room. Its shape is
// owned by the server.
func (r *repo) GetCandidates(ctx context.Context, roomID string) (json.RawMessage, error) {
	var candidates json.RawMessage
	if err := r.getJSON(ctx, r.endpoint("votes", roomID, "candidates"), &candidates); err != nil {
		return nil, fmt.Errorf("failed to get candidates: %w", err)
	}

	return candidates, nil
}

func (r *repo) CastVote(ctx context.Context, params *CastVoteParams) error {
	if err := r.postJSON(ctx, r.endpoint("votes"), params, nil); err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}

	return nil
}

func (r *repo) GetTally(ctx context.Context, roomID string) (json.RawMessage, error) {
	var tally json.RawMessage
	if err := r.getJSON(ctx, r.endpoint("votes", roomID, "tally"), &tally); err != nil {
		return nil, fmt.Errorf("failed to get tally: %w", err)
	}

	return tally, nil
}
