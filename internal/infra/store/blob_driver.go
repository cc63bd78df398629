package store

import (
	"context"
	"io"
	"slices"
	"strings"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const objectSuffix = ".json"

// blobDriver keeps one JSON object per key in a gocloud bucket.
type blobDriver struct {
	bucket *blob.Bucket
	writes *writeLog
}

// OpenMemoryDriver returns a driver over an in-process bucket.
func OpenMemoryDriver() Driver {
	return &blobDriver{bucket: memblob.OpenBucket(nil)}
}

func openFileBucket(dir string) (*blob.Bucket, error) {
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file bucket %s", dir)
	}

	return bucket, nil
}

func objectKey(key string) string {
	return key + objectSuffix
}

func (d *blobDriver) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := d.bucket.ReadAll(ctx, objectKey(key))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, repository.ErrKeyNotFound
		}

		return nil, errors.WithStack(err)
	}

	return data, nil
}

func (d *blobDriver) Set(ctx context.Context, key string, value []byte) error {
	if d.writes != nil {
		d.writes.record(key, value)
	}

	if err := d.bucket.WriteAll(ctx, objectKey(key), value, &blob.WriterOptions{
		ContentType: "application/json",
	}); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (d *blobDriver) Delete(ctx context.Context, key string) error {
	if d.writes != nil {
		d.writes.record(key, nil)
	}

	err := d.bucket.Delete(ctx, objectKey(key))
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.WithStack(err)
	}

	return nil
}

func (d *blobDriver) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	iter := d.bucket.List(nil)
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if obj.IsDir || !strings.HasSuffix(obj.Key, objectSuffix) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(obj.Key, objectSuffix))
	}
	slices.Sort(keys)

	return keys, nil
}

func (d *blobDriver) Close() error {
	return errors.WithStack(d.bucket.Close())
}
