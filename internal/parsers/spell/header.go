package spell

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-compendium/internal/textscan"
)

var entityMarker = regexp.MustCompile(`^###\s*`)

type header struct {
	name      string
	level     *int
	school    *string
	isCantrip bool
	classes   []string
}

// headerGrammar is one accepted header layout. Grammars are tried in order
// and the first match wins.
type headerGrammar struct {
	pattern *regexp.Regexp
	build   func(m []string) *header
}

var headerGrammars = []headerGrammar{
	{
		// Acid Arrow Level 2 Evocation (Wizard)
		pattern: regexp.MustCompile(`^(.+?)\s+Level\s+(\d+)\s+(\w+)\s*\(([^)]+)\)`),
		build: func(m []string) *header {
			return leveled(m[1], m[2], m[3], m[4])
		},
	},
	{
		// Acid Splash Evocation Cantrip (Sorcerer, Wizard)
		pattern: regexp.MustCompile(`^(.+?)\s+(\w+)\s+Cantrip\s*\(([^)]+)\)`),
		build: func(m []string) *header {
			return &header{
				name:      strings.TrimSpace(m[1]),
				level:     lo.ToPtr(0),
				school:    lo.ToPtr(m[2]),
				isCantrip: true,
				classes:   textscan.SplitList(m[3], ","),
			}
		},
	},
	{
		// Acid Arrow Evocation Level 2 (Wizard)
		pattern: regexp.MustCompile(`^(.+?)\s+(\w+)\s+Level\s+(\d+)\s*\(([^)]+)\)`),
		build: func(m []string) *header {
			return leveled(m[1], m[3], m[2], m[4])
		},
	},
}

func leveled(name, level, school, classes string) *header {
	h := &header{
		name:    strings.TrimSpace(name),
		school:  lo.ToPtr(school),
		classes: textscan.SplitList(classes, ","),
	}
	if n, ok := textscan.Atoi(level); ok {
		h.level = lo.ToPtr(n)
	}
	return h
}

// parseHeader never fails: a line no grammar accepts becomes the name with
// level, school and classes left empty.
func parseHeader(line string) *header {
	clean := strings.TrimSpace(entityMarker.ReplaceAllString(strings.TrimSpace(line), ""))

	for _, g := range headerGrammars {
		if m := g.pattern.FindStringSubmatch(clean); m != nil {
			return g.build(m)
		}
	}

	return &header{name: clean, classes: []string{}}
}
