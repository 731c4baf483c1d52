package quiz

import "errors"

// ErrNoPreferenceSignal is returned by Result.Top when no answer cast a vote.
var ErrNoPreferenceSignal = errors.New("quiz: answers produced no genre votes")

type SkipReason string

const (
	SkipUnknownKey    SkipReason = "unknown_key"
	SkipBeyondBattery SkipReason = "beyond_battery"
)

// Skip records an answer that cast no vote.
type Skip struct {
	Position int        `json:"position"`
	Key      string     `json:"key"`
	Reason   SkipReason `json:"reason"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type Result struct {
	// Genres holds every genre with the highest count, in order of first vote.
	Genres  []string     `json:"genres"`
	Tally   []GenreCount `json:"tally"`
	Skipped []Skip       `json:"skipped,omitempty"`
}

// HasSignal reports whether at least one vote was cast.
func (r Result) HasSignal() bool { return len(r.Tally) > 0 }

// Votes is the total number of votes in the tally.
func (r Result) Votes() int {
	n := 0
	for _, gc := range r.Tally {
		n += gc.Count
	}
	return n
}

// Top returns the winning genres, or ErrNoPreferenceSignal for an empty tally.
func (r Result) Top() ([]string, error) {
	if !r.HasSignal() {
		return nil, ErrNoPreferenceSignal
	}
	return r.Genres, nil
}

// Score tallies the genres of the chosen options and returns every genre
// tied for the maximum. Answer i applies to question i; unknown keys and
// answers past the end of the battery are skipped and listed in Skipped.
func Score(b Battery, answers []string) Result {
	res := Result{Genres: []string{}, Tally: []GenreCount{}}
	index := map[string]int{}

	for i, raw := range answers {
		if i >= b.Len() {
			res.Skipped = append(res.Skipped, Skip{Position: i, Key: raw, Reason: SkipBeyondBattery})
			continue
		}
		opt, ok := b.questions[i].Option(raw)
		if !ok {
			res.Skipped = append(res.Skipped, Skip{Position: i, Key: raw, Reason: SkipUnknownKey})
			continue
		}
		for _, g := range opt.Genres {
			j, seen := index[g]
			if !seen {
				j = len(res.Tally)
				index[g] = j
				res.Tally = append(res.Tally, GenreCount{Genre: g})
			}
			res.Tally[j].Count++
		}
	}

	best := 0
	for _, gc := range res.Tally {
		if gc.Count > best {
			best = gc.Count
		}
	}
	if best == 0 {
		return res
	}
	for _, gc := range res.Tally {
		if gc.Count == best {
			res.Genres = append(res.Genres, gc.Genre)
		}
	}
	return res
}
