package pipeline

import (
	"errors"
	"time"

	"github.com/pfrederiksen/track-assets/internal/manifest"
)

var (
	// ErrMissingFields is the skip reason for rows without a name or URL
	ErrMissingFields = errors.New("missing track name or hyperlink")

	// ErrNameCollision is the skip reason for rows whose sanitized name is taken
	ErrNameCollision = errors.New("name collision")

	// ErrNoImageLink marks rows whose info block has no usable image link
	ErrNoImageLink = errors.New("no image link in info block")
)

// Artifact lists the files written for a row
type Artifact struct {
	Name      string `json:"name" yaml:"name"`
	JSONPath  string `json:"json_path,omitempty" yaml:"json_path,omitempty"`
	ImagePath string `json:"image_path,omitempty" yaml:"image_path,omitempty"`
}

// Outcome is the terminal result of one row: Done with an artifact, or
// Skipped at Stage with a reason.
type Outcome struct {
	Row        manifest.Row `json:"row" yaml:"row"`
	State      State        `json:"state" yaml:"state"`
	Stage      State        `json:"stage" yaml:"stage"`
	Reason     string       `json:"reason,omitempty" yaml:"reason,omitempty"`
	Artifact   *Artifact    `json:"artifact,omitempty" yaml:"artifact,omitempty"`
	ImageError string       `json:"image_error,omitempty" yaml:"image_error,omitempty"`
	Err        error        `json:"-" yaml:"-"`
}

func done(row manifest.Row, artifact *Artifact, imageErr error) Outcome {
	o := Outcome{
		Row:      row,
		State:    Done,
		Stage:    Done,
		Artifact: artifact,
	}
	if imageErr != nil {
		o.ImageError = imageErr.Error()
	}
	return o
}

// wroteFiles reports whether the row left an artifact on disk
func (o Outcome) wroteFiles() bool {
	if o.State == Done {
		return true
	}
	return o.Artifact != nil && o.Artifact.ImagePath != ""
}

func skipped(row manifest.Row, stage State, err error) Outcome {
	return Outcome{
		Row:    row,
		State:  Skipped,
		Stage:  stage,
		Reason: err.Error(),
		Err:    err,
	}
}

// Summary aggregates a run
type Summary struct {
	RunID         string          `json:"run_id" yaml:"run_id"`
	StartedAt     time.Time       `json:"started_at" yaml:"started_at"`
	FinishedAt    time.Time       `json:"finished_at" yaml:"finished_at"`
	OutputDir     string          `json:"output_dir" yaml:"output_dir"`
	Total         int             `json:"total" yaml:"total"`
	Done          int             `json:"done" yaml:"done"`
	Skipped       int             `json:"skipped" yaml:"skipped"`
	Images        int             `json:"images" yaml:"images"`
	Outcomes      []Outcome       `json:"outcomes" yaml:"outcomes"`
	ManifestSkips []manifest.Skip `json:"manifest_skips,omitempty" yaml:"manifest_skips,omitempty"`
}

func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.Total++
	switch o.State {
	case Done:
		s.Done++
	case Skipped:
		s.Skipped++
	}
	if o.Artifact != nil && o.Artifact.ImagePath != "" {
		s.Images++
	}
}
