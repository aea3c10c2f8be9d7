package textscan

import (
	"regexp"
	"sort"
	"strings"
)

// Preamble is the Sections key for lines that precede the first header
const Preamble = ""

var (
	featureStart = regexp.MustCompile(`^([A-Z][a-zA-Z\s()/,\d\-–'’]+?)\.\s*(.*)$`)
	abilityLine  = regexp.MustCompile(`^(?i:str|dex|con|int|wis|cha)\s+\d+`)
)

type boundary struct {
	index   int
	keyword string
}

// Sections partitions lines at header lines that exactly equal one of the
// keywords. Every header occurrence is found first, then the lines between
// consecutive headers are assigned to the earlier one, so the order keywords
// are listed in has no effect. A keyword that appears more than once collects
// the lines of every occurrence. Lines before the first header are stored
// under Preamble.
func Sections(lines []string, keywords ...string) map[string][]string {
	known := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		known[k] = struct{}{}
	}

	var bounds []boundary
	for i, line := range lines {
		if _, ok := known[strings.TrimSpace(line)]; ok {
			bounds = append(bounds, boundary{index: i, keyword: strings.TrimSpace(line)})
		}
	}
	sort.SliceStable(bounds, func(i, j int) bool { return bounds[i].index < bounds[j].index })

	out := make(map[string][]string, len(bounds)+1)
	end := len(lines)
	if len(bounds) > 0 {
		end = bounds[0].index
	}
	out[Preamble] = append([]string(nil), lines[:end]...)

	for i, b := range bounds {
		stop := len(lines)
		if i+1 < len(bounds) {
			stop = bounds[i+1].index
		}
		out[b.keyword] = append(out[b.keyword], lines[b.index+1:stop]...)
	}

	return out
}

// FeatureStart matches the "<Capitalized name phrase>. <description>" line
// that opens a trait, action or legendary action.
func FeatureStart(line string) (name, rest string, ok bool) {
	m := featureStart.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// LooksLikeAbilityLine reports whether s starts like "Str 18", the shape of
// an ability score row rather than a name.
func LooksLikeAbilityLine(s string) bool {
	return abilityLine.MatchString(s)
}
