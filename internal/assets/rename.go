package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfrederiksen/track-assets/internal/logger"
	"github.com/pfrederiksen/track-assets/internal/storage"
)

// ErrFileNotFound is reported for rows whose source file does not exist
var ErrFileNotFound = errors.New("file not found")

// Rename renames files in folder according to the mapping in csvPath. For each
// row, <folder>/<currentColumn> becomes <folder>/<newColumn><ext>, where the new
// name is passed through storage.SanitizeFileName and ext is the extension of
// the current name. A missing file or a failed rename is reported on that row.
// An unreadable CSV or a missing column fails the whole batch.
func Rename(csvPath, folder, currentColumn, newColumn string) ([]Result, error) {
	t, err := readTable(csvPath)
	if err != nil {
		return nil, err
	}

	currentIdx, err := t.column(currentColumn)
	if err != nil {
		return nil, err
	}
	newIdx, err := t.column(newColumn)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(t.records))
	for _, rec := range t.records {
		result := renameOne(folder, rec.line, rec.cell(currentIdx), rec.cell(newIdx))
		if result.OK() {
			logger.Info("Renamed file", logger.Fields{"from": result.Subject, "to": result.Target})
		} else {
			logger.Warn("Rename failed", logger.Fields{"file": result.Subject, "line": rec.line, "reason": result.Error})
		}
		results = append(results, result)
	}

	return results, nil
}

func renameOne(folder string, line int, current, next string) Result {
	if current == "" || next == "" {
		return failed(line, current, errors.New("missing current or new name"))
	}

	oldPath := filepath.Join(folder, current)
	info, err := os.Stat(oldPath)
	if err != nil || !info.Mode().IsRegular() {
		return failed(line, current, fmt.Errorf("%w: %s", ErrFileNotFound, current))
	}

	target := storage.SanitizeFileName(next) + filepath.Ext(current)
	if err := os.Rename(oldPath, filepath.Join(folder, target)); err != nil {
		return failed(line, current, fmt.Errorf("renaming %s to %s: %w", current, target, err))
	}

	return Result{Line: line, Subject: current, Target: target}
}
