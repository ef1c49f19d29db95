package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfrederiksen/track-assets/internal/logger"
)

// DefaultClassCSV is the class mapping read by sort-classes when none is given
const DefaultClassCSV = "automobilista2_car_classes.csv"

// ErrFolderNotFound is returned when the base folder does not exist
var ErrFolderNotFound = errors.New("folder does not exist")

// SortIntoClasses moves files of folder into class subfolders. The first CSV
// column names the class folder and the second the file. Folders are created as
// needed. A file that cannot be moved is reported on its row and the batch
// continues.
func SortIntoClasses(csvPath, folder string) ([]Result, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
	}

	t, err := readTable(csvPath)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(t.records))
	for _, rec := range t.records {
		result := moveOne(folder, rec.line, rec.cell(0), rec.cell(1))
		if result.OK() {
			logger.Info("Moved file", logger.Fields{"file": result.Subject, "class": result.Target})
		} else {
			logger.Warn("Move failed", logger.Fields{"file": result.Subject, "line": rec.line, "reason": result.Error})
		}
		results = append(results, result)
	}

	return results, nil
}

func moveOne(folder string, line int, class, file string) Result {
	if class == "" || file == "" {
		return failed(line, file, errors.New("missing class or file name"))
	}

	dest := filepath.Join(folder, class)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return failed(line, file, fmt.Errorf("creating folder %s: %w", dest, err))
	}

	src := filepath.Join(folder, file)
	if _, err := os.Stat(src); err != nil {
		return failed(line, file, fmt.Errorf("%w: %s", ErrFileNotFound, file))
	}

	if err := os.Rename(src, filepath.Join(dest, file)); err != nil {
		return failed(line, file, fmt.Errorf("moving %s to %s: %w", file, dest, err))
	}

	return Result{Line: line, Subject: file, Target: class}
}
