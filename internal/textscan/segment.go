package textscan

import (
	"strings"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
)

// Default marker conventions for source corpora
const (
	DefaultCategoryMarker = "!"
	DefaultEntityMarker   = "###"
)

// SegmentOptions overrides the marker conventions. The zero value uses the defaults.
type SegmentOptions struct {
	// CategoryMarker wraps a category line on both sides, e.g. "!Dragons!"
	CategoryMarker string
	// EntityMarker prefixes the first line of every entity block
	EntityMarker string
}

func (o *SegmentOptions) markers() (string, string) {
	category, entity := DefaultCategoryMarker, DefaultEntityMarker
	if o == nil {
		return category, entity
	}
	if o.CategoryMarker != "" {
		category = o.CategoryMarker
	}
	if o.EntityMarker != "" {
		entity = o.EntityMarker
	}
	return category, entity
}

// Segment splits a corpus into entity blocks. A category line sets the label
// attached to every following block until the next category line. Lines
// before the first entity marker are ignored, blank lines are dropped and the
// trailing block is flushed at end of input.
func Segment(text string, opts *SegmentOptions) []dnd5e.RawEntityBlock {
	categoryMarker, entityMarker := opts.markers()

	blocks := []dnd5e.RawEntityBlock{}
	category := ""
	var current []string
	open := false

	flush := func() {
		if open && len(current) > 0 {
			blocks = append(blocks, dnd5e.RawEntityBlock{
				Category: category,
				Text:     strings.Join(current, "\n"),
				Lines:    current,
			})
		}
		current = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if isCategoryLine(line, categoryMarker) {
			// The category applies to blocks that start after this line.
			flush()
			open = false
			category = strings.TrimSpace(line[len(categoryMarker) : len(line)-len(categoryMarker)])
			continue
		}

		if strings.HasPrefix(line, entityMarker) {
			flush()
			open = true
			if first := strings.TrimSpace(strings.TrimPrefix(line, entityMarker)); first != "" {
				current = append(current, first)
			}
			continue
		}

		if open && line != "" {
			current = append(current, line)
		}
	}
	flush()

	return blocks
}

func isCategoryLine(line, marker string) bool {
	return len(line) > 2*len(marker) &&
		strings.HasPrefix(line, marker) &&
		strings.HasSuffix(line, marker)
}
