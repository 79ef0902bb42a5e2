package runtime

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sergev/glox/parser"
)

// Complete returns the candidate lines for tab completion of the identifier
// under the cursor at the end of line. Keywords and global names are offered.
func (r *Runner) Complete(line string) []string {
	start := len(line)
	for start > 0 {
		c, size := utf8.DecodeLastRuneInString(line[:start])
		if !(unicode.IsLetter(c) || c == '_' || ('0' <= c && c <= '9')) {
			break
		}
		start -= size
	}
	prefix := line[start:]
	if prefix == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	add := func(word string) {
		if strings.HasPrefix(word, prefix) && !seen[word] {
			seen[word] = true
			out = append(out, line[:start]+word)
		}
	}
	for _, kw := range parser.Keywords() {
		add(kw)
	}
	for _, name := range r.Interp.Global.Names() {
		add(name)
	}
	sort.Strings(out)
	return out
}
