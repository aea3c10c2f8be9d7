package dnd5e

// RawEntityBlock is one contiguous run of source text describing a single
// monster or spell, tagged with the category that was current when it started.
type RawEntityBlock struct {
	Category string
	Text     string
	Lines    []string
}

// FirstLine returns the first line of the block, or "" for an empty block
func (b RawEntityBlock) FirstLine() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return b.Lines[0]
}
