package textscan

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MinusSign is U+2212, used by typeset sources in place of '-'
const MinusSign = "−"

var (
	lineNumberPrefix = regexp.MustCompile(`^\d+→`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	newlineReplacer  = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	numberReplacer   = strings.NewReplacer(MinusSign, "-", "+", "", ",", "")
)

// Normalize converts text to NFC and unifies line endings so decomposed
// accents and CRLF files tokenize the same as clean input.
func Normalize(text string) string {
	return norm.NFC.String(newlineReplacer.Replace(text))
}

// Atoi parses a signed integer, accepting U+2212 as the minus sign, a
// leading '+', and thousands separators.
func Atoi(s string) (int, bool) {
	n, err := strconv.Atoi(numberReplacer.Replace(strings.TrimSpace(s)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// StripLineNumber removes a leading "N→" prefix left by line-numbered dumps.
func StripLineNumber(line string) string {
	return lineNumberPrefix.ReplaceAllString(line, "")
}

// CollapseSpace replaces every whitespace run with one space and trims.
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// SplitList splits on sep, trims each entry and drops empty ones.
func SplitList(s, sep string) []string {
	parts := lo.Map(strings.Split(s, sep), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(parts)
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
