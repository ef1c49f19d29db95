// Package assets holds the one-shot asset preparation utilities that surround
// the track pipeline.
//
// ExtractGallery pairs gallery images in a saved HTML snapshot with their
// titles, Rename renames files according to a CSV mapping, and SortIntoClasses
// moves files into class-named subfolders. Each processes its rows in order and
// reports a Result per row; one failing row never stops the others.
package assets

// Result is the outcome of one utility row
type Result struct {
	Line    int    `json:"line" yaml:"line"`
	Subject string `json:"subject" yaml:"subject"`
	Target  string `json:"target,omitempty" yaml:"target,omitempty"`
	Err     error  `json:"-" yaml:"-"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the row succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

func failed(line int, subject string, err error) Result {
	return Result{Line: line, Subject: subject, Err: err, Error: err.Error()}
}
