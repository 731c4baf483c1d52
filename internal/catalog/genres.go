package catalog

import "strings"

// NormalizeGenres accepts genres as separate values, comma separated text, or
// a mix of both. Each genre is trimmed and lower-cased; empties and repeats
// are dropped. Order of first appearance is kept.
func NormalizeGenres(in ...string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			g := fold(strings.TrimSpace(part))
			if g == "" {
				continue
			}
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}
