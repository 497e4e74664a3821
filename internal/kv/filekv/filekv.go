package filekv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/grocery/internal/kv"
)

// JSON-backed storage. Single file holding an object of key -> value,
// human-readable and portable. Every Set rewrites the whole file.
// No locking; fine for a local single-user CLI.

const DefaultFileName = "grocery.json"

var ErrNotJSON = errors.New("value is not valid JSON")

type Store struct {
	path string
}

// Open returns a store over path. An empty path means DefaultFileName
// in the working directory. The file is created on first Set.
func Open(path string) (*Store, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		path = filepath.Join(wd, DefaultFileName)
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) load() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return doc, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, kv.ErrNotFound)
	}
	// values are stored indented along with the rest of the file
	var out bytes.Buffer
	if err := json.Compact(&out, v); err != nil {
		return nil, fmt.Errorf("json compact: %w", err)
	}
	return out.Bytes(), nil
}

// Set stores value under key. Values must be JSON documents so the
// file stays a single readable object.
func (s *Store) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("%s: %w", key, ErrNotJSON)
	}
	doc, err := s.load()
	if err != nil {
		// a corrupt file is replaced rather than blocking every write
		doc = map[string]json.RawMessage{}
	}
	doc[key] = json.RawMessage(value)
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
