// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package cooldown

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrStoreClosed is returned after Close.
var ErrStoreClosed = errors.New("cooldown store is closed")

const defaultKeyPrefix = "cooldown:"

// BadgerStore keeps cooldown entries in BadgerDB with a TTL per entry.
// Values are the alert time as big-endian Unix nanoseconds.
type BadgerStore struct {
	db     *badger.DB
	prefix []byte
	owned  bool

	mu     sync.RWMutex
	closed bool
}

// OpenBadgerStore opens (or creates) a BadgerDB directory at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for cooldown: %w", err)
	}
	s := NewBadgerStore(db, "")
	s.owned = true
	return s, nil
}

// NewBadgerStore wraps an existing DB. The DB is not closed by Close.
func NewBadgerStore(db *badger.DB, prefix string) *BadgerStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &BadgerStore{db: db, prefix: []byte(prefix)}
}

func (s *BadgerStore) makeKey(id string) []byte {
	key := make([]byte, 0, len(s.prefix)+len(id))
	key = append(key, s.prefix...)
	return append(key, id...)
}

func (s *BadgerStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// Save stores id -> at with the given TTL.
func (s *BadgerStore) Save(id string, at time.Time, ttl time.Duration) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, uint64(at.UnixNano()))

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(s.makeKey(id), val)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Delete removes the given ids. Missing ids are ignored.
func (s *BadgerStore) Delete(ids ...string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			if err := txn.Delete(s.makeKey(id)); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadAll returns every unexpired entry.
func (s *BadgerStore) LoadAll() (map[string]time.Time, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	out := make(map[string]time.Time)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(s.prefix):])
			err := item.Value(func(val []byte) error {
				if len(val) != 8 {
					return fmt.Errorf("cooldown entry %q: bad value length %d", id, len(val))
				}
				out[id] = time.Unix(0, int64(binary.BigEndian.Uint64(val)))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RunGC runs one value log garbage collection pass. badger.ErrNoRewrite
// means there was nothing to collect and is not an error.
func (s *BadgerStore) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.db.Opts().InMemory {
		return nil
	}
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close marks the store closed and closes the DB if this store opened it.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.owned {
		return s.db.Close()
	}
	return nil
}
