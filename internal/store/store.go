// Package store persists each collection as a whole JSON document on disk.
// There are no partial writes: every save rewrites the full document.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type Store struct {
	dataDir string
	logger  zerolog.Logger
}

func New(dataDir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dataDir: dataDir, logger: logger}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

// Load reads the named document into out and reports whether it was found.
// A missing file is not an error. An unreadable or unparsable file is logged
// and treated as absent, leaving out untouched so the caller's fallback
// value stands.
func (s *Store) Load(name string, out any) bool {
	b, err := os.ReadFile(s.path(name))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error().Err(err).Str("document", name).Msg("read document")
		}
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		s.logger.Error().Err(err).Str("document", name).Msg("parse document, starting from fallback")
		return false
	}
	return true
}

// Save serializes doc and overwrites the named document in full.
func (s *Store) Save(name string, doc any) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), b, 0o644)
}
