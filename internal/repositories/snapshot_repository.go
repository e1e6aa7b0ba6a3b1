package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	"github.com/keicha2025/keicha-shop/internal/cart"
	"github.com/redis/go-redis/v9"
)

type SnapshotRepository interface {
	Load(ctx context.Context, cartID string) (*cart.Snapshot, error)
	Save(ctx context.Context, cartID string, snap cart.Snapshot) error
	Delete(ctx context.Context, cartID string) error
}

type snapshotRepository struct {
	client *redis.Client
}

func NewSnapshotRepo(client *redis.Client) SnapshotRepository {
	return &snapshotRepository{client: client}
}

func snapshotKey(cartID string) string {
	return "cart:" + cartID
}

// Load fetches the persisted cart snapshot. A missing key returns nil without
// error. A corrupt payload is discarded with a warning and also returns nil:
// the shopper starts over with an empty cart rather than seeing an error.
func (r *snapshotRepository) Load(ctx context.Context, cartID string) (*cart.Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotKey(cartID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger := middleware.LoggerFromContext(ctx)
		logger.Warn("Discarding corrupt cart snapshot",
			slog.String("cart_id", cartID), slog.Any("error", err))

		if delErr := r.client.Del(ctx, snapshotKey(cartID)).Err(); delErr != nil {
			logger.Warn("Failed to delete corrupt cart snapshot", slog.Any("error", delErr))
		}

		return nil, nil
	}

	return &snap, nil
}

// Save overwrites the snapshot whole. Snapshots carry no TTL; an abandoned
// cart survives until the shopper clears it, as it did in the browser.
func (r *snapshotRepository) Save(ctx context.Context, cartID string, snap cart.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey(cartID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}

	return nil
}

func (r *snapshotRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, snapshotKey(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}

	return nil
}
