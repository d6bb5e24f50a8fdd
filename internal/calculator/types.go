package calculator

import "fmt"

// Mode is the display state: collecting inputs or showing a result.
type Mode int

const (
	ModeUnknown Mode = iota
	ModeEntry
	ModeResults
)

func (m Mode) Valid() bool {
	return m == ModeEntry || m == ModeResults
}

func (m Mode) String() string {
	switch m {
	case ModeEntry:
		return "entry"
	case ModeResults:
		return "results"
	default:
		return "unknown"
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "entry":
		return ModeEntry, nil
	case "results":
		return ModeResults, nil
	default:
		return ModeUnknown, fmt.Errorf("invalid mode: %q", s)
	}
}
