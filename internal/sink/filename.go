package sink

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SectionExt is appended to every section file name inside a container.
const SectionExt = ".xhtml"

var reUnderscore = regexp.MustCompile(`_+`)

// Sanitize folds a display title into a lower-case [a-z0-9_] file stem.
func Sanitize(s string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	repl := []string{
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"'", "",
		"’", "",
	}
	for i := 0; i < len(repl); i += 2 {
		s = strings.ReplaceAll(s, repl[i], repl[i+1])
	}

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			clean = append(clean, r)
		}
	}
	s = reUnderscore.ReplaceAllString(string(clean), "_")

	return strings.Trim(s, "_")
}

// nameSet hands out unique section file names.
type nameSet struct {
	used map[string]bool
}

func newNameSet() *nameSet {
	return &nameSet{used: map[string]bool{}}
}

// Next returns Sanitize(title)+SectionExt, suffixed _2, _3... on repeats.
// Titles that sanitize to nothing become "section".
func (n *nameSet) Next(title string) string {
	stem := Sanitize(title)
	if stem == "" {
		stem = "section"
	}

	name := stem
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", stem, i)
	}
	n.used[name] = true

	return name + SectionExt
}
