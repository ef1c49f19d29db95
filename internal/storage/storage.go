package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// DescriptorExt is the file extension of JSON descriptors.
const DescriptorExt = ".json"

// Store writes artifacts into a single output directory
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if it doesn't exist.
// A leading ~ is expanded to the user's home directory.
func New(dir string) (*Store, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("expanding output directory: %w", err)
	}

	if err := os.MkdirAll(expanded, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Store{dir: expanded}, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// DescriptorPath returns the path of the JSON descriptor for a sanitized name.
func (s *Store) DescriptorPath(name string) string {
	return filepath.Join(s.dir, name+DescriptorExt)
}

// WriteDescriptor serializes v as indented JSON to <dir>/<name>.json,
// replacing any existing file. name must already be sanitized.
func (s *Store) WriteDescriptor(name string, v any) (string, error) {
	if name == "" {
		return "", fmt.Errorf("writing descriptor: empty name")
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(v); err != nil {
		return "", fmt.Errorf("encoding descriptor: %w", err)
	}

	path := s.DescriptorPath(name)
	if err := os.WriteFile(path, bytes.TrimRight(buf.Bytes(), "\n"), 0644); err != nil {
		return "", fmt.Errorf("writing descriptor: %w", err)
	}

	return path, nil
}
