package monster

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-compendium/internal/textscan"
)

const sizeWords = `(?:Tiny|Small|Medium|Large|Huge|Gargantuan)`

var (
	// <name> <Size>[ or <Size>] <Type>[ (subtype)], <Alignment>
	headerPattern = regexp.MustCompile(
		`^(.+?)\s+(` + sizeWords + `(?:\s+or\s+` + sizeWords + `)?)\s+` +
			`((?:Swarm\s+of\s+(?:Tiny|Small|Medium)\s+)?[A-Za-z]+(?:\s*\([^)]+\))?),\s*(.+)$`)

	subtypePattern = regexp.MustCompile(`\(([^)]+)\)`)
	leadingDigit   = regexp.MustCompile(`^\d`)
)

type header struct {
	name      string
	size      string
	kind      string
	subtype   *string
	alignment string
}

// parseHeader returns nil when the line is not a stat block header or when
// the would-be name looks like a stat line that slipped into header position.
func parseHeader(line string) *header {
	m := headerPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil
	}

	name := strings.TrimSpace(m[1])
	if rejectName(name) {
		return nil
	}

	h := &header{
		name:      name,
		size:      m[2],
		kind:      strings.TrimSpace(m[3]),
		alignment: strings.TrimSpace(m[4]),
	}

	if i := strings.Index(h.kind, "("); i >= 0 {
		if sm := subtypePattern.FindStringSubmatch(h.kind); sm != nil {
			subtype := strings.TrimSpace(sm[1])
			h.subtype = &subtype
		}
		h.kind = strings.TrimSpace(h.kind[:i])
	}

	return h
}

func rejectName(name string) bool {
	return textscan.LooksLikeAbilityLine(name) ||
		strings.Contains(name, "Attack Roll") ||
		strings.Contains(name, "damage") ||
		strings.Contains(name, "+") ||
		leadingDigit.MatchString(name) ||
		len([]rune(name)) < 3
}
