package narrative

import (
	"regexp"
	"strings"
)

var (
	headingRe    = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`)
	bulletRe     = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	boldRe       = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^*\n]+?)\*`)
	underlineRe  = regexp.MustCompile(`(^|[^\w])__([^_\n]+?)__([^\w]|$)`)
	emphasisRe   = regexp.MustCompile(`(^|[^\w])_([^_\n]+?)_([^\w]|$)`)
	codeRe       = regexp.MustCompile("`([^`\n]*)`")
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	listNumberRe = regexp.MustCompile(`(?m)^[ \t]*\d+\.(?:[ \t]+|$)`)
)

// StripMarkup removes heading markers, bullets, emphasis, inline code and
// link syntax, keeping the wrapped text. Numbered list prefixes survive.
// Underscore emphasis only matches at word edges so snake_case stays intact.
// Single asterisks always read as italics, so "4*5, *not*" loses the first
// pair. A line opening with "2024. " is a numbered item to StripListNumbers.
func StripMarkup(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = headingRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = replaceStable(underlineRe, text, "${1}${2}${3}")
	text = replaceStable(emphasisRe, text, "${1}${2}${3}")
	text = codeRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// StripListNumbers drops "1. " style prefixes at line starts
func StripListNumbers(text string) string {
	return listNumberRe.ReplaceAllString(text, "")
}

// Sanitize is the full cleanup: markup and numbered prefixes.
// ExtractFields expects StripMarkup output since it reads the numbers.
func Sanitize(text string) string {
	return strings.TrimSpace(StripListNumbers(StripMarkup(text)))
}

// replaceStable reapplies re until the text stops changing. Adjacent matches
// share a boundary character, so one pass can miss every other one.
func replaceStable(re *regexp.Regexp, text, repl string) string {
	for i := 0; i < 4; i++ {
		next := re.ReplaceAllString(text, repl)
		if next == text {
			break
		}
		text = next
	}
	return text
}
