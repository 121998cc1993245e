package server

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/atdash-org/atdash/config"
	"github.com/atdash-org/atdash/dataset"
	"github.com/atdash-org/atdash/engine"
)

// ============================================================================
// STORE — named, prepared datasets
// ============================================================================
// Sources are loaded and normalized once at startup. Resolution and
// normalization are pure functions of the raw table, so the prepared form
// is safe to share across concurrent requests — nothing mutates it.
// ============================================================================

// Store holds the datasets this process serves, keyed by source name.
type Store struct {
	names    []string
	prepared map[string]*engine.Prepared
}

// LoadSources loads every configured source. An unreadable source is a hard
// failure — reporting it is the caller's job, masking it is not ours.
func LoadSources(sources []config.Source) (*Store, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no dataset sources configured")
	}

	s := &Store{prepared: make(map[string]*engine.Prepared, len(sources))}
	for _, src := range sources {
		if err := s.load(src); err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}
	}
	return s, nil
}

func (s *Store) load(src config.Source) error {
	var (
		table *dataset.Table
		err   error
	)
	if src.Sheet != "" && strings.EqualFold(filepath.Ext(src.Path), ".xlsx") {
		table, err = dataset.ReadXLSX(src.Path, src.Sheet)
	} else {
		table, err = dataset.LoadFile(src.Path)
	}
	if err != nil {
		return err
	}

	p, err := engine.Prepare(table)
	if err != nil {
		return err
	}

	if _, dup := s.prepared[src.Name]; dup {
		return fmt.Errorf("duplicate source name")
	}
	s.names = append(s.names, src.Name)
	s.prepared[src.Name] = p

	log.Info().
		Str("source", src.Name).
		Str("path", src.Path).
		Int("rows", table.NumRows()).
		Int("resolved_columns", len(p.Mapping)).
		Msg("dataset loaded")
	return nil
}

// Names returns the source names in configuration order.
func (s *Store) Names() []string {
	return append([]string(nil), s.names...)
}

// Get returns a prepared dataset by name; an empty name selects the first
// configured source.
func (s *Store) Get(name string) (*engine.Prepared, bool) {
	if name == "" && len(s.names) > 0 {
		name = s.names[0]
	}
	p, ok := s.prepared[name]
	return p, ok
}
