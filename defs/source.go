package defs

import (
	"maps"
	"sync"
	"sync/atomic"

	"github.com/reusee/vartext/interps"
	"github.com/reusee/vartext/logs"
)

// Source holds the current definitions and their resolution. Readers see
// immutable snapshots; Set and Load are serialized.
type Source struct {
	resolver interps.Resolver
	logger   logs.Logger

	mu       sync.Mutex
	snapshot atomic.Pointer[snapshot]
}

type snapshot struct {
	table  interps.Table
	hash   string
	result interps.Result
	err    error
}

func NewSource(resolver interps.Resolver, logger logs.Logger) *Source {
	ret := &Source{
		resolver: resolver,
		logger:   logger,
	}
	ret.snapshot.Store(&snapshot{
		table: interps.Table{},
		hash:  interps.Hash(nil),
		result: interps.Result{
			Values: interps.Table{},
		},
	})
	return ret
}

// Set replaces the definitions. Unchanged content keeps the current snapshot.
// A resolution failure is stored and returned by Resolved until the next Set.
func (s *Source) Set(table interps.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table = maps.Clone(table)
	if table == nil {
		table = interps.Table{}
	}
	hash := interps.Hash(table)
	if current := s.snapshot.Load(); current.hash == hash {
		return current.err
	}

	result, err := s.resolver.Resolve(table)
	next := &snapshot{
		table:  table,
		hash:   hash,
		result: result,
		err:    err,
	}
	s.snapshot.Store(next)

	if err != nil {
		s.logger.Error("resolve definitions",
			"error", err,
			"keys", len(table),
		)
		return err
	}
	s.logger.Info("definitions resolved",
		"keys", len(table),
		"passes", result.Passes,
		"hash", hash[:12],
	)
	for _, d := range result.Dangling {
		s.logger.Warn("dangling reference",
			"key", d.Key,
			"missing", d.Missing,
		)
	}
	return nil
}

// Load reads definition files and sets their merged content.
func (s *Source) Load(paths ...string) error {
	table, err := ReadFiles(paths...)
	if err != nil {
		return err
	}
	s.logger.Debug("definitions loaded",
		"paths", paths,
		"keys", len(table),
	)
	return s.Set(table)
}

func (s *Source) Resolved() (map[string]string, string, error) {
	snapshot := s.snapshot.Load()
	if snapshot.err != nil {
		return nil, snapshot.hash, snapshot.err
	}
	return snapshot.result.Values, snapshot.hash, nil
}

func (s *Source) Dangling() []interps.Dangling {
	return s.snapshot.Load().result.Dangling
}

// Table returns the raw definitions.
func (s *Source) Table() interps.Table {
	return s.snapshot.Load().table
}
