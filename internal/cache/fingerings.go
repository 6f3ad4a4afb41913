// Package cache memoizes generated fingerings in badger. Generation is a
// pure function of (root, quality, bass interval), so entries never go stale;
// the TTL only bounds the size of a long-running cache.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

const keyPrefix = "fingering:v1:"

// FingeringCache stores generator output keyed by chord
type FingeringCache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens a cache in dir, or in memory when dir is empty. A zero ttl
// keeps entries until the cache is closed or the directory removed.
func Open(dir string, ttl time.Duration) (*FingeringCache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return &FingeringCache{db: db, ttl: ttl}, nil
}

// Close releases the database
func (c *FingeringCache) Close() error {
	return c.db.Close()
}

// Key builds the cache key. Inputs are normalized so equivalent spellings
// share an entry.
func Key(rootPC int, quality string, bassInterval int) []byte {
	return []byte(fmt.Sprintf("%s%d:%s:%d",
		keyPrefix,
		theory.NormalizeToPitchClass(rootPC),
		theory.NormalizeQualityToken(quality),
		theory.NormalizeToPitchClass(bassInterval),
	))
}

// Get returns the memoized fingerings. ok is false on a miss.
func (c *FingeringCache) Get(rootPC int, quality string, bassInterval int) ([]fretboard.Fingering, bool, error) {
	var out []fretboard.Fingering
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(Key(rootPC, quality, bassInterval))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached fingerings: %w", err)
	}
	return out, true, nil
}

// Put memoizes fingerings, including empty results
func (c *FingeringCache) Put(rootPC int, quality string, bassInterval int, fingerings []fretboard.Fingering) error {
	if fingerings == nil {
		fingerings = []fretboard.Fingering{}
	}
	data, err := json.Marshal(fingerings)
	if err != nil {
		return fmt.Errorf("failed to marshal fingerings: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(Key(rootPC, quality, bassInterval), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Purge drops every memoized entry
func (c *FingeringCache) Purge() error {
	return c.db.DropPrefix([]byte(keyPrefix))
}

// Len counts memoized entries
func (c *FingeringCache) Len() (int, error) {
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
