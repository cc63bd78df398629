package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix  = "storefront:"
	defaultRedisChannel = "storefront:changes"
	redisScanCount      = 100
)

// changeMessage is what instances sharing a redis store broadcast after a write.
type changeMessage struct {
	Origin  string `json:"origin"`
	Key     string `json:"key"`
	Deleted bool   `json:"deleted"`
}

// redisDriver stores each key as a redis string and broadcasts writes on a channel.
type redisDriver struct {
	client     *redis.Client
	prefix     string
	channel    string
	instanceID string
	logger     *slog.Logger

	pubsub *redis.PubSub
	wg     sync.WaitGroup
}

// OpenRedisDriver connects to redis and verifies the connection.
func OpenRedisDriver(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (Driver, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to ping redis at %s", cfg.Addr)
	}

	return newRedisDriver(client, cfg, logger), nil
}

func newRedisDriver(client *redis.Client, cfg config.RedisConfig, logger *slog.Logger) *redisDriver {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	channel := cfg.Channel
	if channel == "" {
		channel = defaultRedisChannel
	}

	return &redisDriver{
		client:     client,
		prefix:     prefix,
		channel:    channel,
		instanceID: uuid.New().String(),
		logger:     logger,
	}
}

func (d *redisDriver) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := d.client.Get(ctx, d.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrKeyNotFound
		}

		return nil, errors.WithStack(err)
	}

	return value, nil
}

func (d *redisDriver) Set(ctx context.Context, key string, value []byte) error {
	if err := d.client.Set(ctx, d.prefix+key, value, 0).Err(); err != nil {
		return errors.WithStack(err)
	}
	d.broadcast(ctx, key, false)

	return nil
}

func (d *redisDriver) Delete(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, d.prefix+key).Err(); err != nil {
		return errors.WithStack(err)
	}
	d.broadcast(ctx, key, true)

	return nil
}

func (d *redisDriver) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	iter := d.client.Scan(ctx, 0, d.prefix+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), d.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	slices.Sort(keys)

	return slices.Compact(keys), nil
}

// WriteBatch applies the mutations in one MULTI/EXEC.
func (d *redisDriver) WriteBatch(ctx context.Context, mutations []repository.Mutation) error {
	_, err := d.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, m := range mutations {
			if m.Delete {
				pipe.Del(ctx, d.prefix+m.Key)
			} else {
				pipe.Set(ctx, d.prefix+m.Key, m.Value, 0)
			}
		}

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	for _, m := range mutations {
		d.broadcast(ctx, m.Key, m.Delete)
	}

	return nil
}

// broadcast is best effort: the write already succeeded.
func (d *redisDriver) broadcast(ctx context.Context, key string, deleted bool) {
	payload, err := json.Marshal(changeMessage{Origin: d.instanceID, Key: key, Deleted: deleted})
	if err != nil {
		return
	}

	if err := d.client.Publish(ctx, d.channel, payload).Err(); err != nil {
		d.logger.Warn("Failed to broadcast store change",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

func (d *redisDriver) watch(emit func(repository.StoreChange)) error {
	d.pubsub = d.client.Subscribe(context.Background(), d.channel)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for msg := range d.pubsub.Channel() {
			var change changeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				d.logger.Warn("Ignoring malformed store change message", slog.Any("error", err))

				continue
			}
			if change.Origin == d.instanceID {
				continue
			}
			emit(repository.StoreChange{Key: change.Key, Deleted: change.Deleted})
		}
	}()

	return nil
}

func (d *redisDriver) Close() error {
	if d.pubsub != nil {
		d.pubsub.Close()
		d.wg.Wait()
	}

	return errors.WithStack(d.client.Close())
}
