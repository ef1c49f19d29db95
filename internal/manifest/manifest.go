// Package manifest reads the track manifest: an ordered CSV of track names and
// the reference pages they are scraped from.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pfrederiksen/track-assets/internal/logger"
)

// Default column headers
const (
	DefaultNameColumn = "Track Name"
	DefaultURLColumn  = "Hyperlink"
)

// ErrManifestUnavailable is returned when the manifest file is missing or unreadable
var ErrManifestUnavailable = errors.New("manifest unavailable")

// Row is one track to process
type Row struct {
	Line int    `json:"line" yaml:"line"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Skip records a manifest line that was dropped
type Skip struct {
	Line   int    `json:"line" yaml:"line"`
	Reason string `json:"reason" yaml:"reason"`
}

// Manifest is the parsed manifest in source order
type Manifest struct {
	Rows  []Row  `json:"rows" yaml:"rows"`
	Skips []Skip `json:"skips,omitempty" yaml:"skips,omitempty"`
}

// Columns names the header cells holding the track name and URL
type Columns struct {
	Name string
	URL  string
}

func (c Columns) withDefaults() Columns {
	if c.Name == "" {
		c.Name = DefaultNameColumn
	}
	if c.URL == "" {
		c.URL = DefaultURLColumn
	}
	return c
}

// Load opens and reads the manifest at path
func Load(path string, cols Columns) (*Manifest, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnavailable, err)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnavailable, err)
	}
	defer f.Close()

	m, err := Read(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestUnavailable, path, err)
	}
	return m, nil
}

// Read parses a manifest from r. The first record is the header. Rows missing
// a name or URL are recorded as skips and logged, never returned as rows.
func Read(r io.Reader, cols Columns) (*Manifest, error) {
	cols = cols.withDefaults()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	nameIdx, urlIdx := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		// a repeated header name resolves to its last column
		switch h {
		case cols.Name:
			nameIdx = i
		case cols.URL:
			urlIdx = i
		}
	}
	if nameIdx < 0 || urlIdx < 0 {
		logger.Warn("Manifest header is missing a required column", logger.Fields{
			"name_column": cols.Name,
			"url_column":  cols.URL,
			"header":      header,
		})
	}

	m := &Manifest{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		name := cell(record, nameIdx)
		url := cell(record, urlIdx)

		if name == "" || url == "" {
			skip := Skip{Line: line, Reason: fmt.Sprintf("missing %s or %s", cols.Name, cols.URL)}
			m.Skips = append(m.Skips, skip)
			logger.Warn("Skipping row", logger.Fields{
				"line":   skip.Line,
				"reason": skip.Reason,
			})
			continue
		}

		m.Rows = append(m.Rows, Row{Line: line, Name: name, URL: url})
	}

	return m, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
