package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"kenotrix/backend/internal/model"
)

// ThreadRepository persists the whole thread collection as one snapshot.
// Implementations never see partial updates; every Save replaces the blob.
type ThreadRepository interface {
	Load(ctx context.Context) ([]model.Thread, error)
	Save(ctx context.Context, threads []model.Thread) error
}

func encodeSnapshot(threads []model.Thread) ([]byte, error) {
	if threads == nil {
		threads = []model.Thread{}
	}
	data, err := json.Marshal(threads)
	if err != nil {
		return nil, fmt.Errorf("could not encode threads: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) ([]model.Thread, error) {
	var threads []model.Thread
	if err := json.Unmarshal(data, &threads); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if threads == nil {
		threads = []model.Thread{}
	}
	return threads, nil
}
