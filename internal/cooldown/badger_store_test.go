// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package cooldown

import (
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func newInMemoryStore(t *testing.T) *BadgerStore {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewBadgerStore(db, "")
}

func TestBadgerStore_SaveLoadDelete(t *testing.T) {
	s := newInMemoryStore(t)
	now := time.Now().Truncate(time.Millisecond)

	if err := s.Save("SIM-U-123", now, time.Hour); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	if err := s.Save("UAL456", now.Add(-time.Minute), time.Hour); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	all, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LoadAll returned %d entries, want 2", len(all))
	}
	if !all["SIM-U-123"].Equal(now) {
		t.Errorf("SIM-U-123 = %v, want %v", all["SIM-U-123"], now)
	}

	if err := s.Delete("UAL456", "missing"); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	all, _ = s.LoadAll()
	if _, ok := all["UAL456"]; ok || len(all) != 1 {
		t.Errorf("after Delete: %v", all)
	}
}

func TestBadgerStore_Prefix(t *testing.T) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	defer db.Close()

	a := NewBadgerStore(db, "a:")
	b := NewBadgerStore(db, "b:")
	_ = a.Save("X", time.Now(), time.Hour)

	all, err := b.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("prefix b: saw %d entries from prefix a:", len(all))
	}
}

func TestBadgerStore_Closed(t *testing.T) {
	s := newInMemoryStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	if err := s.Save("X", time.Now(), time.Hour); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Save after Close = %v, want ErrStoreClosed", err)
	}
	if _, err := s.LoadAll(); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("LoadAll after Close = %v, want ErrStoreClosed", err)
	}
	// Close is idempotent.
	if err := s.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
}

func TestBadgerStore_RunGCInMemory(t *testing.T) {
	if err := newInMemoryStore(t).RunGC(); err != nil {
		t.Errorf("RunGC error = %v", err)
	}
}

func TestOpenBadgerStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().Truncate(time.Millisecond)

	s, err := OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("OpenBadgerStore error = %v", err)
	}
	tr := NewTracker(5*time.Minute, WithStore(s))
	tr.RecordAlert("UAL456", now)
	if err := s.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}

	s2, err := OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()

	tr2 := NewTracker(5*time.Minute, WithStore(s2))
	n, err := tr2.Restore(now.Add(time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("Restore = %d, %v; want 1, nil", n, err)
	}
	if tr2.ShouldAlert("UAL456", now.Add(time.Minute)) {
		t.Error("entity alerted before restart should still be suppressed")
	}
}
