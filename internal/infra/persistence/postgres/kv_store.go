package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore implements repository.KeyValueStore and repository.BatchWriter on the kv_entries table.
type KVStore struct {
	db      *gorm.DB
	closeFn func() error
	now     func() time.Time
}

// NewKVStore migrates the kv_entries table. closeFn may be nil.
func NewKVStore(ctx context.Context, db *gorm.DB, closeFn func() error) (*KVStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&model.KVEntryModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate kv_entries")
	}

	return &KVStore{db: db, closeFn: closeFn, now: time.Now}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntryModel

	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrKeyNotFound
		}

		return nil, errors.WithStack(err)
	}

	return []byte(entry.Value), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.WithStack(upsert(s.db.WithContext(ctx), key, value, s.now()))
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&model.KVEntryModel{}).Error

	return errors.WithStack(err)
}

func (s *KVStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	err := s.db.WithContext(ctx).Model(&model.KVEntryModel{}).Order("key").Pluck("key", &keys).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return keys, nil
}

// WriteBatch applies all mutations in one database transaction.
func (s *KVStore) WriteBatch(ctx context.Context, mutations []repository.Mutation) (err error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	now := s.now()
	for _, m := range mutations {
		if m.Delete {
			err = tx.Where("key = ?", m.Key).Delete(&model.KVEntryModel{}).Error
		} else {
			err = upsert(tx, m.Key, m.Value, now)
		}
		if err != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
			}

			return errors.Wrapf(err, "apply %s", m.Key)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

func (s *KVStore) Close() error {
	if s.closeFn == nil {
		return nil
	}

	return s.closeFn()
}

func upsert(db *gorm.DB, key string, value []byte, now time.Time) error {
	entry := model.KVEntryModel{Key: key, Value: string(value), UpdatedAt: now}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
