package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-picklecache/internal"
	"github.com/0xRadioAc7iv/go-picklecache/internal/codec"
	"github.com/0xRadioAc7iv/go-picklecache/internal/lock"
	"github.com/0xRadioAc7iv/go-picklecache/internal/record"
	"github.com/0xRadioAc7iv/go-picklecache/internal/utils"
)

// Cache is an in-memory map of K to V mirrored to one backing file.
//
// Keys and values must be serializable by the selected codec. Methods are
// safe for concurrent use within a process; see the package documentation
// for use across processes.
type Cache[K comparable, V any] struct {
	lockFile *os.File
	codec    codec.Codec
	logger   *zap.Logger
	path     string
	data     map[K]V

	mu sync.RWMutex // for data

	// AutoSync makes Set and Delete flush before returning. It may be
	// changed at any time by the owner of the cache.
	AutoSync bool
}

// New creates a cache and immediately loads its backing file. A missing or
// empty backing file yields an empty cache.
func New[K comparable, V any](opts ...Option) (*Cache[K, V], error) {
	cfg := internal.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	cd, err := codec.Lookup(cfg.Codec)
	if err != nil {
		return nil, err
	}

	path := cfg.Path
	if path == "" {
		path = DefaultFileName + cd.Ext()
	}

	c := &Cache[K, V]{
		codec:    cd,
		logger:   cfg.Logger.With(zap.String("path", path), zap.String("codec", cd.Name())),
		path:     path,
		data:     make(map[K]V),
		AutoSync: cfg.AutoSync,
	}

	if cfg.FileLock {
		lf, err := lock.LockFile(path)
		if err != nil {
			if errors.Is(err, lock.ErrLocked) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		c.lockFile = lf
	}

	if err := c.Load(); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

// Open is New with the backing file and write-through policy given
// positionally.
func Open[K comparable, V any](path string, autosync bool, opts ...Option) (*Cache[K, V], error) {
	return New[K, V](append([]Option{WithPath(path), WithAutoSync(autosync)}, opts...)...)
}

// Path returns the backing file location.
func (c *Cache[K, V]) Path() string {
	return c.path
}

// Set inserts or overwrites key. With AutoSync, the flush error (if any) is
// returned; the in-memory update is kept either way.
func (c *Cache[K, V]) Set(key K, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = value

	if c.AutoSync {
		return c.flush()
	}
	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound. A stored zero
// value is returned like any other.
func (c *Cache[K, V]) Get(key K) (V, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.data[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	return value, nil
}

// Delete removes key, or returns ErrKeyNotFound if it is absent.
func (c *Cache[K, V]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[key]; !ok {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	delete(c.data, key)

	if c.AutoSync {
		return c.flush()
	}
	return nil
}

// Has reports whether key is present, whatever its value.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.data[key]
	return ok
}

// Size returns the number of entries in memory.
func (c *Cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}

// Len is an alias of Size.
func (c *Cache[K, V]) Len() int {
	return c.Size()
}

// Keys returns the keys in unspecified order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

// Load replaces the in-memory mapping with the content of the backing file.
// A missing or zero-length file leaves the mapping unchanged. On error the
// mapping is unchanged too.
func (c *Cache[K, V]) Load() error {
	raw, err := c.readBackingFile()
	if err != nil {
		return err
	}

	if len(raw) == 0 {
		c.logger.Debug("backing file missing or empty, nothing to load")
		return nil
	}

	snapshot, err := record.DecodeSnapshotFromBytes(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDeserialize, c.path, err)
	}

	if written := string(snapshot.Codec); written != c.codec.Name() {
		return fmt.Errorf("%w: %s: written with codec %q, cache uses %q", ErrDeserialize, c.path, written, c.codec.Name())
	}

	loaded := make(map[K]V)
	if err := c.codec.Decode(snapshot.Payload, &loaded); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDeserialize, c.path, err)
	}
	if loaded == nil {
		loaded = make(map[K]V)
	}

	c.mu.Lock()
	c.data = loaded
	c.mu.Unlock()

	c.logger.Debug("loaded backing file",
		zap.Int("entries", len(loaded)),
		zap.Time("written", time.Unix(0, snapshot.Timestamp)),
	)

	return nil
}

// Flush writes the whole mapping to the backing file, replacing its content.
func (c *Cache[K, V]) Flush() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.flush()
}

// Close releases the file lock, if one was taken. It does not flush.
func (c *Cache[K, V]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lockFile == nil {
		return nil
	}

	err := lock.UnlockFile(c.lockFile)
	c.lockFile = nil
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// flush must be called with c.mu held.
func (c *Cache[K, V]) flush() error {
	payload, err := c.codec.Encode(c.data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSerialize, c.path, err)
	}

	snapshot := record.CreateSnapshot(c.codec.Name(), payload)
	encoded, err := record.EncodeSnapshotToBytes(&snapshot)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSerialize, c.path, err)
	}

	if err := utils.WriteFileAtomic(c.path, encoded, FilePerm); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	c.logger.Debug("flushed backing file",
		zap.Int("entries", len(c.data)),
		zap.Int("bytes", len(encoded)),
	)

	return nil
}

func (c *Cache[K, V]) readBackingFile() ([]byte, error) {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, c.path)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return raw, nil
}
