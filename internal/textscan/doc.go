// Package textscan holds the lexical pieces shared by the monster and spell
// parsers: corpus normalization, block segmentation on `!category!` and
// `###` marker lines, section slicing, the feature boundary grammar and
// signed integer parsing that tolerates typographic minus signs.
package textscan
