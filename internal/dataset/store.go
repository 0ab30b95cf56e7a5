package dataset

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store keeps the most recently loaded Dataset. With reloadOnRequest set,
// every Get goes back to the source.
type Store struct {
	source          Source
	logger          *zap.Logger
	reloadOnRequest bool

	mu      sync.RWMutex
	current *Dataset
	version uint64
}

func NewStore(source Source, logger *zap.Logger, reloadOnRequest bool) *Store {
	return &Store{
		source:          source,
		logger:          logger,
		reloadOnRequest: reloadOnRequest,
	}
}

// Reload reads the source and swaps in the new snapshot.
func (s *Store) Reload(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	rows, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("dataset load failed", zap.String("source", s.source.Name()), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.version++
	ds := New(rows, s.version)
	s.current = ds
	s.mu.Unlock()

	minExp, maxExp := ds.ExperienceBounds()
	s.logger.Info("dataset loaded",
		zap.String("source", s.source.Name()),
		zap.Int("rows", ds.Len()),
		zap.Int("regions", len(ds.regions)),
		zap.Int("exp_min", minExp),
		zap.Int("exp_max", maxExp),
		zap.Uint64("version", ds.Version),
		zap.Duration("took", time.Since(start)),
	)
	return ds, nil
}

// Get returns the cached snapshot, loading it on first use.
func (s *Store) Get(ctx context.Context) (*Dataset, error) {
	if s.reloadOnRequest {
		return s.Reload(ctx)
	}

	s.mu.RLock()
	ds := s.current
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}
	return s.Reload(ctx)
}

// Volatile reports whether snapshots are replaced on every request, in which
// case derived results should not be cached.
func (s *Store) Volatile() bool {
	return s.reloadOnRequest
}
