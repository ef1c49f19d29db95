package pipeline

import "fmt"

// State is the processing state of a manifest row
type State int

const (
	Pending State = iota
	Fetching
	Parsing
	Extracting
	Writing
	Done
	Skipped
)

var stateNames = []string{"PENDING", "FETCHING", "PARSING", "EXTRACTING", "WRITING", "DONE", "SKIPPED"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether s is Done or Skipped
func (s State) Terminal() bool {
	return s == Done || s == Skipped
}

// MarshalText encodes the state by name for JSON and YAML reports
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state: %q", text)
}
