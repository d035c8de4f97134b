// Package slug derives URL identifiers for threads from their titles.
package slug

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Brackets read badly in URLs; parentheses are in the safe set.
var brackets = strings.NewReplacer("[", "(", "{", "(", "]", ")", "}", ")")

// Runs of anything outside the kept set collapse into a single hyphen.
var disallowed = regexp.MustCompile(`[^\p{L}\p{N}_!$&'()*,;=-]+`)

// trimTrailingRepeat keeps only one of a trailing run of the same
// punctuation character.
func trimTrailingRepeat(s string) string {
	runes := []rune(s)
	n := len(runes)
	if n < 2 {
		return s
	}
	last := runes[n-1]
	if unicode.IsLetter(last) || unicode.IsNumber(last) {
		return s
	}
	i := n - 1
	for i > 0 && runes[i-1] == last {
		i--
	}
	return string(runes[:i+1])
}

// Thread builds the public identifier for a thread. With safe mode enabled
// (explicit flag, not a process-wide toggle) only the bare numeric id is
// emitted; otherwise the id is prefixed to a cleaned-up form of the title.
func Thread(id int64, title string, safe bool) string {
	if safe {
		return strconv.FormatInt(id, 10)
	}

	s := brackets.Replace(strings.ToLower(title))
	s = disallowed.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	s = trimTrailingRepeat(s)
	if s == "" {
		return strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%d-%s", id, s)
}
