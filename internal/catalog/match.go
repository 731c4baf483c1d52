package catalog

import (
	"fmt"
	"strings"
)

// Matcher decides whether a show's genre text satisfies a request. Both
// arguments arrive case-folded; requested is never empty.
type Matcher interface {
	Match(genres string, requested []string) bool
}

// SubstringMatcher requires every requested genre to appear anywhere in the
// genre text, so "drama" also matches "dramatic".
type SubstringMatcher struct{}

func (SubstringMatcher) Match(genres string, requested []string) bool {
	for _, g := range requested {
		if !strings.Contains(genres, g) {
			return false
		}
	}
	return true
}

// TokenMatcher splits the genre text on commas and requires an exact token
// for every requested genre.
type TokenMatcher struct{}

func (TokenMatcher) Match(genres string, requested []string) bool {
	tokens := map[string]struct{}{}
	for _, t := range strings.Split(genres, ",") {
		tokens[strings.TrimSpace(t)] = struct{}{}
	}
	for _, g := range requested {
		if _, ok := tokens[g]; !ok {
			return false
		}
	}
	return true
}

// MatcherByName resolves the configured matcher name.
func MatcherByName(name string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "substring":
		return SubstringMatcher{}, nil
	case "token":
		return TokenMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown genre matcher %q", name)
	}
}
