// server/filesystem/document.go
package filesystem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ViniZap4/todo-server/domain"
)

// ErrPersist wraps every failure to write the backing file.
var ErrPersist = errors.New("failed to persist data")

// ParseError reports a backing file that could not be read or decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to read todo database %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Store mirrors a Document to a single JSON file. It assumes it is the only
// writer of that file.
type Store struct {
	path string
	log  zerolog.Logger
}

func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) tmpPath() string {
	return s.path + ".tmp"
}

// Load reads the backing file. It never fails: a missing file is created with
// an empty document, and an unreadable or corrupt one is logged and replaced
// by an empty document in memory only, leaving the file on disk untouched.
func (s *Store) Load() *domain.Document {
	doc, err := s.read()
	switch {
	case err == nil:
		return doc
	case errors.Is(err, os.ErrNotExist):
		doc = domain.NewDocument()
		if err := s.Save(doc); err != nil {
			s.log.Error().Err(err).Str("path", s.path).Msg("failed to initialize todo database")
		} else {
			s.log.Info().Str("path", s.path).Msg("initialized empty todo database")
		}
		return doc
	default:
		s.log.Error().Err(err).Str("path", s.path).Msg("failed to read todo database")
		return domain.NewDocument()
	}
}

func (s *Store) read() (*domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, &ParseError{Path: s.path, Err: err}
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	doc.Normalize()
	return &doc, nil
}

// Save writes the document to <path>.tmp and renames it over the target, so
// the target is never observed half-written.
func (s *Store) Save(doc *domain.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	tmp := s.tmpPath()
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return nil
}

// Encode renders a document as 2-space indented JSON without a trailing newline.
func Encode(doc *domain.Document) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
