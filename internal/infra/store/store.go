// Package store implements the profile key-value store on top of pluggable drivers.
package store

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"
)

// Driver is the storage backend behind the store.
type Driver interface {
	repository.KeyValueStore

	// Close releases the backend.
	Close() error
}

// changeSource is implemented by drivers that observe writes of other processes.
type changeSource interface {
	watch(emit func(repository.StoreChange)) error
}

// kvStore adds change notification and transactions to a Driver.
type kvStore struct {
	driver   Driver
	notifier *notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewStore wraps a driver into a repository.Store and starts its change watcher.
func NewStore(driver Driver, logger *slog.Logger) (repository.Store, error) {
	s := &kvStore{
		driver:   driver,
		notifier: newNotifier(),
		logger:   logger,
		now:      time.Now,
	}

	if src, ok := driver.(changeSource); ok {
		if err := src.watch(s.emitRemote); err != nil {
			return nil, errors.Wrap(err, "failed to watch store changes")
		}
	}

	return s, nil
}

func (s *kvStore) emitRemote(change repository.StoreChange) {
	change.Remote = true
	if change.At.IsZero() {
		change.At = s.now()
	}

	s.logger.Debug("Remote store change",
		slog.String("key", change.Key),
		slog.Bool("deleted", change.Deleted),
	)
	s.notifier.publish(change)
}

func (s *kvStore) emitLocal(key string, deleted bool) {
	s.notifier.publish(repository.StoreChange{
		Key:     key,
		Deleted: deleted,
		At:      s.now(),
	})
}

// Get reads key, seeing the writes of an enclosing transaction.
func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	if tx := overlayFrom(ctx, s); tx != nil {
		if m, ok := tx.lookup(key); ok {
			if m.Delete {
				return nil, repository.ErrKeyNotFound
			}

			return m.Value, nil
		}
	}

	value, err := s.driver.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, err
		}

		return nil, errors.Wrapf(err, "get %s", key)
	}

	return value, nil
}

// Set writes key immediately, or buffers it inside a transaction.
func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	if tx := overlayFrom(ctx, s); tx != nil {
		tx.put(repository.Mutation{Key: key, Value: value})

		return nil
	}

	if err := s.driver.Set(ctx, key, value); err != nil {
		return errors.Wrapf(err, "set %s", key)
	}
	s.emitLocal(key, false)

	return nil
}

// Delete removes key immediately, or buffers the removal inside a transaction.
func (s *kvStore) Delete(ctx context.Context, key string) error {
	if tx := overlayFrom(ctx, s); tx != nil {
		tx.put(repository.Mutation{Key: key, Delete: true})

		return nil
	}

	if err := s.driver.Delete(ctx, key); err != nil {
		return errors.Wrapf(err, "delete %s", key)
	}
	s.emitLocal(key, true)

	return nil
}

// Keys lists stored keys, including the pending writes of a transaction.
func (s *kvStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.driver.Keys(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list keys")
	}

	if tx := overlayFrom(ctx, s); tx != nil {
		return tx.mergeKeys(keys), nil
	}

	return keys, nil
}

// Subscribe registers a change callback.
func (s *kvStore) Subscribe(key string, fn func(repository.StoreChange)) func() {
	return s.notifier.Subscribe(key, fn)
}

// Execute runs fn inside a transaction. A nested call joins the outer one.
func (s *kvStore) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	if overlayFrom(ctx, s) != nil {
		return fn(ctx)
	}

	tx := newOverlay(s)
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	mutations := tx.mutations()
	if len(mutations) == 0 {
		return nil
	}

	if err := s.commit(ctx, mutations); err != nil {
		return errors.Wrap(err, "failed to commit store transaction")
	}

	for _, m := range mutations {
		s.emitLocal(m.Key, m.Delete)
	}

	return nil
}

// commit applies mutations in one batch when the driver supports it. Otherwise
// they are applied in order, and a failure restores the keys already written
// to their previous values on a best-effort basis.
func (s *kvStore) commit(ctx context.Context, mutations []repository.Mutation) error {
	if bw, ok := s.driver.(repository.BatchWriter); ok {
		return bw.WriteBatch(ctx, mutations)
	}

	undo := make([]repository.Mutation, 0, len(mutations))
	for _, m := range mutations {
		prev, err := s.snapshot(ctx, m.Key)
		if err == nil {
			err = s.apply(ctx, m)
		}
		if err != nil {
			s.rollback(ctx, undo)

			return errors.Wrapf(err, "apply %s", m.Key)
		}
		undo = append(undo, prev)
	}

	return nil
}

// snapshot returns the mutation that restores key to its current state.
func (s *kvStore) snapshot(ctx context.Context, key string) (repository.Mutation, error) {
	value, err := s.driver.Get(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return repository.Mutation{Key: key, Delete: true}, nil
	}
	if err != nil {
		return repository.Mutation{}, errors.Wrapf(err, "read %s before commit", key)
	}

	return repository.Mutation{Key: key, Value: value}, nil
}

func (s *kvStore) apply(ctx context.Context, m repository.Mutation) error {
	if m.Delete {
		return s.driver.Delete(ctx, m.Key)
	}

	return s.driver.Set(ctx, m.Key, m.Value)
}

func (s *kvStore) rollback(ctx context.Context, undo []repository.Mutation) {
	for i := len(undo) - 1; i >= 0; i-- {
		if err := s.apply(ctx, undo[i]); err != nil {
			s.logger.Error("Failed to roll back store write",
				slog.String("key", undo[i].Key),
				slog.Any("error", err),
			)
		}
	}
}

// Close closes the driver.
func (s *kvStore) Close() error {
	return s.driver.Close()
}
