package targeting

import (
	"sort"
	"strings"
)

// Assemble unions the explicit and implicit candidate token sequences,
// sorts lexicographically, removes consecutive duplicates, and joins
// with a single ASCII space. An empty union yields the empty string.
// Tokens containing whitespace are an operator error and are passed
// through unchanged — no escaping.
func Assemble(explicit, implicit []string) string {
	all := make([]string, 0, len(explicit)+len(implicit))
	all = append(all, explicit...)
	all = append(all, implicit...)
	sort.Strings(all)

	deduped := all[:0]
	for i, token := range all {
		if i == 0 || token != all[i-1] {
			deduped = append(deduped, token)
		}
	}
	return strings.Join(deduped, " ")
}
