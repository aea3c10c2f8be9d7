// Package spell turns a spell corpus into dnd5e.Spell records.
//
// Scan walks the corpus line by line and collects one Entry per "###"
// header; Finalize turns an Entry into a Spell. Keeping the two apart lets
// callers finalize entries one at a time and isolate failures.
package spell

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-compendium/internal/textscan"
)

type scanState int

const (
	// stateIdle is before the first header
	stateIdle scanState = iota
	// stateAccumulatingHeader collects the details clause until "Duration:"
	// or a blank line
	stateAccumulatingHeader
	// stateAccumulatingDescription collects prose until the next header
	stateAccumulatingDescription
)

func (s scanState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAccumulatingHeader:
		return "accumulating_header"
	case stateAccumulatingDescription:
		return "accumulating_description"
	default:
		return "unknown"
	}
}

// statLine matches lines of an embedded creature stat block, which are not prose
var statLine = regexp.MustCompile(`^(?:(?:AC|HP|Speed|STR|DEX|CON|INT|WIS|CHA)\b|(?:Str|Dex|Con|Int|Wis|Cha)\s+\d+)`)

// Entry is one spell as collected by the scanner
type Entry struct {
	// Index is the zero-based position of the header in the corpus
	Index int
	// Header is the header line without the details clause
	Header string
	// Details is the assembled "Casting Time: ... Duration: ..." clause
	Details string
	// Description holds the prose lines in order
	Description []string
}

// Scanner is the line-driven state machine behind Scan. Every header line
// finalizes the entry in progress and starts a new one.
type Scanner struct {
	state   scanState
	current *Entry
	entries []Entry
}

// NewScanner returns a scanner in the idle state
func NewScanner() *Scanner {
	return &Scanner{state: stateIdle}
}

// Feed consumes one source line
func (s *Scanner) Feed(raw string) {
	line := textscan.StripLineNumber(strings.TrimSpace(raw))
	if line == "" {
		// A blank line ends a details clause that never reached "Duration:".
		if s.state == stateAccumulatingHeader && s.current.Details != "" {
			s.state = stateAccumulatingDescription
		}
		return
	}

	if strings.HasPrefix(line, textscan.DefaultEntityMarker) {
		s.startEntry(line)
		return
	}

	if s.state == stateIdle {
		return
	}

	// A full details clause on its own line replaces whatever was collected.
	if hasAllDetails(line) {
		s.current.Details = line
		s.state = stateAccumulatingDescription
		return
	}

	switch s.state {
	case stateAccumulatingHeader:
		s.accumulateDetails(line)
	case stateAccumulatingDescription:
		if !statLine.MatchString(line) {
			s.current.Description = append(s.current.Description, line)
		}
	}
}

func (s *Scanner) startEntry(line string) {
	s.flush()

	entry := &Entry{Index: len(s.entries)}
	if head, tail, ok := strings.Cut(line, castingTimeMarker); ok {
		entry.Header = strings.TrimSpace(head)
		entry.Details = castingTimeMarker + tail
	} else {
		entry.Header = line
	}

	s.current = entry
	s.state = stateAccumulatingHeader
	if strings.Contains(entry.Details, durationMarker) {
		s.state = stateAccumulatingDescription
	}
}

// accumulateDetails appends a wrapped details line. Lines before the
// clause begins are ignored.
func (s *Scanner) accumulateDetails(line string) {
	if s.current.Details == "" {
		if !strings.Contains(line, castingTimeMarker) {
			return
		}
		s.current.Details = line
	} else {
		s.current.Details += " " + line
	}

	if strings.Contains(s.current.Details, durationMarker) {
		s.state = stateAccumulatingDescription
	}
}

func (s *Scanner) flush() {
	if s.current != nil {
		s.entries = append(s.entries, *s.current)
	}
	s.current = nil
}

// Close flushes the entry in progress and returns every entry, resetting
// the scanner to idle.
func (s *Scanner) Close() []Entry {
	s.flush()
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	s.entries = nil
	s.state = stateIdle
	return entries
}

// Scan runs a fresh Scanner over the whole corpus
func Scan(text string) []Entry {
	s := NewScanner()
	for _, line := range strings.Split(text, "\n") {
		s.Feed(line)
	}
	return s.Close()
}
