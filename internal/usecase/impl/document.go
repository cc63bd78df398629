// Package impl contains the implementation of the storefront's business logic.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
)

// readDocument decodes the JSON value under key into a T.
// A missing key yields the zero T. A value that does not decode is logged,
// removed from the store and also read as the zero T.
func readDocument[T any](ctx context.Context, store repository.KeyValueStore, logger *slog.Logger, key string) (T, error) {
	var doc T

	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return doc, nil
		}

		return doc, errors.Wrapf(err, "failed to read %s", key)
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		discardDocument(ctx, store, logger, key, err)

		var zero T

		return zero, nil
	}

	return doc, nil
}

// discardDocument drops a corrupted value so the next load starts clean.
func discardDocument(ctx context.Context, store repository.KeyValueStore, logger *slog.Logger, key string, cause error) {
	logger.Warn("Discarding corrupted stored value",
		slog.String("key", key),
		slog.Any("error", cause),
	)

	if err := store.Delete(ctx, key); err != nil {
		logger.Error("Failed to delete corrupted stored value",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// writeDocument encodes v as JSON and stores it under key.
func writeDocument(ctx context.Context, store repository.KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}

	if err := store.Set(ctx, key, raw); err != nil {
		return domainerrors.NewStoreError(err, key)
	}

	return nil
}

// deleteDocument removes key.
func deleteDocument(ctx context.Context, store repository.KeyValueStore, key string) error {
	if err := store.Delete(ctx, key); err != nil {
		return domainerrors.NewStoreError(err, key)
	}

	return nil
}
