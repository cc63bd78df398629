package store

import (
	"crypto/sha256"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// writeLog remembers the last content seen for each key, so the watcher can
// tell this process's own writes apart from writes made by other processes.
type writeLog struct {
	mu   sync.Mutex
	last map[string][sha256.Size]byte
}

func newWriteLog() *writeLog {
	return &writeLog{last: make(map[string][sha256.Size]byte)}
}

// record stores the digest of value; a nil value marks a deletion.
func (l *writeLog) record(key string, value []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.last[key] = digest(value)
}

// observe records value and reports whether it differs from what was last seen.
func (l *writeLog) observe(key string, value []byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	sum := digest(value)
	prev, ok := l.last[key]
	l.last[key] = sum

	return !ok || prev != sum
}

func digest(value []byte) [sha256.Size]byte {
	if value == nil {
		return [sha256.Size]byte{}
	}

	return sha256.Sum256(value)
}

// fileDriver is a blobDriver over a directory plus an fsnotify watcher that
// reports writes of other processes sharing the directory.
type fileDriver struct {
	*blobDriver

	dir     string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// OpenFileDriver opens (creating if needed) a profile directory.
func OpenFileDriver(dir string, logger *slog.Logger) (Driver, error) {
	bucket, err := openFileBucket(dir)
	if err != nil {
		return nil, err
	}

	return &fileDriver{
		blobDriver: &blobDriver{bucket: bucket, writes: newWriteLog()},
		dir:        dir,
		logger:     logger,
		done:       make(chan struct{}),
	}, nil
}

func (d *fileDriver) watch(emit func(repository.StoreChange)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	if err := watcher.Add(d.dir); err != nil {
		watcher.Close()

		return errors.Wrapf(err, "failed to watch %s", d.dir)
	}
	d.watcher = watcher

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.loop(emit)
	}()

	return nil
}

func (d *fileDriver) loop(emit func(repository.StoreChange)) {
	for {
		select {
		case <-d.done:
			return
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			d.handle(event, emit)
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("File store watcher error", slog.Any("error", err))
		}
	}
}

func (d *fileDriver) handle(event fsnotify.Event, emit func(repository.StoreChange)) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, objectSuffix) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	key := strings.TrimSuffix(name, objectSuffix)

	value, err := os.ReadFile(event.Name)
	switch {
	case err == nil:
		if d.writes.observe(key, value) {
			emit(repository.StoreChange{Key: key})
		}
	case os.IsNotExist(err):
		if d.writes.observe(key, nil) {
			emit(repository.StoreChange{Key: key, Deleted: true})
		}
	default:
		d.logger.Warn("File store watcher read failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

func (d *fileDriver) Close() error {
	if d.watcher != nil {
		close(d.done)
		d.watcher.Close()
		d.wg.Wait()
	}

	return d.blobDriver.Close()
}
