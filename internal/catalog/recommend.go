package catalog

// DefaultLimit caps a recommendation list when no limit is given.
const DefaultLimit = 5

// Filter selects shows by genre. The zero value uses SubstringMatcher and
// DefaultLimit.
type Filter struct {
	Matcher Matcher
	Limit   int
}

// Recommend returns up to limit shows, in table order, matching every
// requested genre. requested goes through NormalizeGenres first; a request
// that normalizes to nothing matches no show. limit <= 0 falls back to the
// filter's Limit and then DefaultLimit. The result is never nil.
func (f Filter) Recommend(t *Table, requested []string, limit int) []Show {
	out := []Show{}
	genres := NormalizeGenres(requested...)
	if len(genres) == 0 || t.Len() == 0 {
		return out
	}
	if limit <= 0 {
		limit = f.Limit
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	m := f.Matcher
	if m == nil {
		m = SubstringMatcher{}
	}
	for i, folded := range t.folded {
		if !m.Match(folded, genres) {
			continue
		}
		out = append(out, t.shows[i])
		if len(out) == limit {
			break
		}
	}
	return out
}

// Recommend is Filter{}.Recommend: substring matching, DefaultLimit when
// limit <= 0.
func Recommend(t *Table, requested []string, limit int) []Show {
	return Filter{}.Recommend(t, requested, limit)
}
