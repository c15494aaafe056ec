// Package simulations persists completed simulation runs in an append-only
// WAL so the dashboard stream can replay them. Plans themselves are not
// persisted; only run outcomes are journaled.
package simulations

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/dripfolio/dripfolio/internal/domain"
)

const (
	DefaultDir   = "./wal/simulations"
	segmentLimit = 100
	maxSegments  = 10

	runKeyPrefix = "simulation_run_"
)

// WALStore journals simulation runs in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed run journal.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "run_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init simulation run WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save appends one completed run to the journal.
func (s *WALStore) Save(run domain.SimulationRun) error {
	if s == nil || s.wal == nil {
		return errors.New("simulation store is not initialized")
	}
	if run.ID == "" {
		return errors.New("simulation run ID is required")
	}

	payload, err := json.Marshal(run)
	if err != nil {
		return errors.Wrap(err, "marshal simulation run")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, runKeyPrefix+run.ID, payload)
}

// RunsAfter returns all runs journaled after the provided WAL index.
func (s *WALStore) RunsAfter(index uint64) ([]domain.SimulationRunRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("simulation store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]domain.SimulationRunRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, runKeyPrefix) {
			continue
		}

		var run domain.SimulationRun
		if err := json.Unmarshal(payload, &run); err != nil {
			return nil, errors.Wrap(err, "decode simulation run")
		}
		records = append(records, domain.SimulationRunRecord{Index: idx, Run: run})
	}

	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("simulation store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
