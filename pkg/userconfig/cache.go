package userconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// UserConfigSuffix is the file-name suffix of per-user configuration
	// files within an application container.
	UserConfigSuffix = ".user.config.json"

	// MainAppConfigFile is the application descriptor file name.
	MainAppConfigFile = "main.app.config.json"
)

// UserConfigFileName returns the storage file name for a user id.
func UserConfigFileName(userID string) string {
	return userID + UserConfigSuffix
}

// UserIDFromFileName derives the user id from a container file name.
// Returns false for files that are not user-configuration files.
func UserIDFromFileName(name string) (string, bool) {
	if !strings.HasSuffix(name, UserConfigSuffix) || len(name) == len(UserConfigSuffix) {
		return "", false
	}
	return strings.TrimSuffix(name, UserConfigSuffix), true
}

// Metrics records cache activity. Implementations must be safe for
// concurrent use. A nil Metrics disables instrumentation.
type Metrics interface {
	// ReadHit is called when Get is served from memory (including a
	// confirmed-absent slot).
	ReadHit()
	// ReadMiss is called when Get has to consult the file store.
	ReadMiss()
	// StoreLoad records one read-through fetch against the file store.
	StoreLoad(d time.Duration, err error)
	// Entries reports the current number of present records.
	Entries(n int)
}

// slotState distinguishes a cached record from a confirmed-absent user.
// "Never looked up" is represented by absence from the slot map.
type slotState uint8

const (
	slotPresent slotState = iota
	slotAbsent
)

type slot struct {
	state  slotState
	record *UserConfigRecord
}

// Cache is the per-application in-memory view of the user-configuration
// files in one storage container, with read-through population.
//
// The cache is exclusively owned and mutated by its coordinator and lives
// for the process lifetime of the owning application; there is no eviction
// or expiry. The mutex protects map structure only: overlapping operations
// on the same user id are not serialized, and the file store remains the
// ordering authority (write-through, never write-behind).
type Cache struct {
	containerID string
	files       FileStore
	metrics     Metrics

	mu    sync.RWMutex
	slots map[string]slot
}

// NewCache creates an empty cache over the given storage container.
// metrics may be nil.
func NewCache(files FileStore, containerID string, metrics Metrics) *Cache {
	return &Cache{
		containerID: containerID,
		files:       files,
		metrics:     metrics,
		slots:       make(map[string]slot),
	}
}

// Get returns the record for userID.
//
// A slot already in memory (present or confirmed absent) is served without
// I/O. On a miss the record is fetched from the file store; a successful
// fetch is cached, and a not-found result is cached as confirmed absent so
// repeated lookups of a known-absent user issue no further upstream calls.
// Any other store failure leaves the slot untouched.
func (c *Cache) Get(ctx context.Context, userID string) (*UserConfigRecord, error) {
	c.mu.RLock()
	s, ok := c.slots[userID]
	c.mu.RUnlock()
	if ok {
		if c.metrics != nil {
			c.metrics.ReadHit()
		}
		if s.state == slotAbsent {
			return nil, ErrUserNotFound
		}
		return s.record, nil
	}

	if c.metrics != nil {
		c.metrics.ReadMiss()
	}

	var record UserConfigRecord
	start := time.Now()
	err := c.files.GetFileContent(ctx, c.containerID, UserConfigFileName(userID), &record)
	if c.metrics != nil {
		c.metrics.StoreLoad(time.Since(start), err)
	}
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			c.store(userID, slot{state: slotAbsent})
			return nil, ErrUserNotFound
		}
		return nil, NewUpstreamError(fmt.Sprintf("fetch of user config %q", userID), err)
	}

	c.store(userID, slot{state: slotPresent, record: &record})
	return &record, nil
}

// Put writes the record through to the file store and updates memory only
// on success. A failed write leaves both the store and the slot untouched
// for this entry.
func (c *Cache) Put(ctx context.Context, userID string, record *UserConfigRecord) error {
	if err := c.files.SetFileContent(ctx, c.containerID, UserConfigFileName(userID), record); err != nil {
		return NewUpstreamError(fmt.Sprintf("write of user config %q", userID), err)
	}
	c.store(userID, slot{state: slotPresent, record: record})
	return nil
}

// Remove deletes the record from the file store and, on success, marks the
// slot confirmed absent so a subsequent Get reports not-found without a
// further store fetch.
func (c *Cache) Remove(ctx context.Context, userID string) error {
	if err := c.files.DeleteFile(ctx, c.containerID, UserConfigFileName(userID)); err != nil {
		return NewUpstreamError(fmt.Sprintf("delete of user config %q", userID), err)
	}
	c.store(userID, slot{state: slotAbsent})
	return nil
}

// Seed inserts a record loaded during application bootstrap without
// touching the file store.
func (c *Cache) Seed(userID string, record *UserConfigRecord) {
	c.store(userID, slot{state: slotPresent, record: record})
}

// All returns the present records keyed by user id. The returned map is a
// copy reflecting the latest completed mutation; no upstream fetches are
// triggered.
func (c *Cache) All() map[string]*UserConfigRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]*UserConfigRecord, len(c.slots))
	for id, s := range c.slots {
		if s.state == slotPresent {
			out[id] = s.record
		}
	}
	return out
}

// CountPresent returns the number of present records.
func (c *Cache) CountPresent() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, s := range c.slots {
		if s.state == slotPresent {
			n++
		}
	}
	return n
}

func (c *Cache) store(userID string, s slot) {
	c.mu.Lock()
	c.slots[userID] = s
	n := 0
	if c.metrics != nil {
		for _, sl := range c.slots {
			if sl.state == slotPresent {
				n++
			}
		}
	}
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.Entries(n)
	}
}
