// Package firmware classifies update titles as firmware related and derives
// the available, installed and pending-download views of a report.
package firmware

import "strings"

// keywords are matched case-insensitively as literal substrings of a title.
var keywords = []string{
	"firmware",
	"BIOS",
	"UEFI",
	"System Firmware",
	"Embedded Controller",
	"Intel Management Engine",
}

// lowered is keywords folded once for matching.
var lowered = func() []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = strings.ToLower(kw)
	}
	return out
}()

// DefaultKeywords returns a copy of the keyword set.
func DefaultKeywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}

// MatchedKeyword returns the first keyword contained in title.
func MatchedKeyword(title string) (string, bool) {
	t := strings.ToLower(title)
	for i, kw := range lowered {
		if strings.Contains(t, kw) {
			return keywords[i], true
		}
	}
	return "", false
}

// Matches reports whether title contains any firmware keyword. It is the single
// predicate used for both search results and history entries.
func Matches(title string) bool {
	_, ok := MatchedKeyword(title)
	return ok
}
