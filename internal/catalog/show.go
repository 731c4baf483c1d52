package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Show is one catalog row. Genres keeps the raw comma separated text for
// display; matching works on a case-folded copy held by Table.
type Show struct {
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Genres      string `json:"genres"`
	Description string `json:"description,omitempty"`
}

// Table is an ordered, read-only show list. Share it freely between
// goroutines; nothing mutates it after NewTable returns.
type Table struct {
	shows  []Show
	folded []string
}

func NewTable(shows []Show) *Table {
	t := &Table{
		shows:  append([]Show(nil), shows...),
		folded: make([]string, len(shows)),
	}
	for i, s := range t.shows {
		t.folded[i] = fold(s.Genres)
	}
	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.shows)
}

func (t *Table) Show(i int) Show { return t.shows[i] }

func (t *Table) Shows() []Show {
	if t == nil {
		return []Show{}
	}
	return append([]Show{}, t.shows...)
}

// Search pages through shows whose title contains q (case-insensitive).
// It returns the page and the total number of matches.
func (t *Table) Search(q string, limit, offset int) ([]Show, int) {
	out := []Show{}
	if t == nil {
		return out, 0
	}
	q = fold(strings.TrimSpace(q))
	total := 0
	for _, s := range t.shows {
		if q != "" && !strings.Contains(fold(s.Title), q) {
			continue
		}
		if total >= offset && (limit <= 0 || len(out) < limit) {
			out = append(out, s)
		}
		total++
	}
	return out, total
}

// fold lower-cases s with Unicode rules. Casers keep state, so one is built
// per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
