package monster

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/textscan"
)

var (
	legendaryUsagePattern = regexp.MustCompile(
		`^Legendary\s+Action\s+Uses:\s*(\d+)(?:\s*\((\d+)\s+in\s+Lair\))?\.\s*(.*)$`)
	legendaryLoosePattern = regexp.MustCompile(`(\d+)(?:\s*\((\d+)\s+in\s+Lair\))?`)
)

// parseLegendaryActions reads the usage clause at the top of the section and
// segments the rest into features. The usage clause is the first line plus
// any continuation lines before the first feature boundary.
func parseLegendaryActions(lines []string) *dnd5e.LegendaryActions {
	lines = lo.Filter(lines, func(l string, _ int) bool { return strings.TrimSpace(l) != "" })
	if len(lines) == 0 {
		return nil
	}

	end := 1
	for end < len(lines) {
		if _, _, ok := textscan.FeatureStart(strings.TrimSpace(lines[end])); ok {
			break
		}
		end++
	}

	la := &dnd5e.LegendaryActions{
		Actions: segmentFeatures(lines[end:]),
	}

	usage := textscan.CollapseSpace(strings.Join(lines[:end], " "))
	if m := legendaryUsagePattern.FindStringSubmatch(usage); m != nil {
		la.UsageDescription = usage
		la.Uses = atoiPtr(m[1])
		la.UsesInLair = atoiPtr(m[2])
	} else {
		// Degraded path: keep the first line verbatim and take whatever
		// count it mentions.
		la.UsageDescription = strings.TrimSpace(lines[0])
		if m := legendaryLoosePattern.FindStringSubmatch(la.UsageDescription); m != nil {
			la.Uses = atoiPtr(m[1])
			la.UsesInLair = atoiPtr(m[2])
		}
	}

	if la.UsageDescription == "" && len(la.Actions) == 0 {
		return nil
	}
	return la
}

func atoiPtr(s string) *int {
	n, ok := textscan.Atoi(s)
	if !ok {
		return nil
	}
	return lo.ToPtr(n)
}
