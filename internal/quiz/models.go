package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyBattery = errors.New("quiz: battery has no questions")
	ErrNoOptions    = errors.New("quiz: question has no options")
	ErrEmptyKey     = errors.New("quiz: option key is empty")
	ErrDuplicateKey = errors.New("quiz: duplicate option key")
)

// Option is one selectable answer; picking it casts a vote for each genre.
type Option struct {
	Key    string   `json:"key"`
	Text   string   `json:"text"`
	Genres []string `json:"genres"`
}

type Question struct {
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Option looks up an option by key, ignoring case and surrounding space.
func (q Question) Option(key string) (Option, bool) {
	key = normalizeKey(key)
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Keys lists the option keys in display order.
func (q Question) Keys() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Key
	}
	return out
}

// Battery is an ordered, validated question set. The zero value is empty;
// use NewBattery or DefaultBattery.
type Battery struct {
	questions []Question
}

// NewBattery validates qs and takes a deep copy, so later changes to the
// caller's slices do not leak in.
func NewBattery(qs []Question) (Battery, error) {
	if len(qs) == 0 {
		return Battery{}, ErrEmptyBattery
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		if len(q.Options) == 0 {
			return Battery{}, fmt.Errorf("question %d: %w", i+1, ErrNoOptions)
		}
		seen := make(map[string]struct{}, len(q.Options))
		opts := make([]Option, len(q.Options))
		for j, o := range q.Options {
			k := normalizeKey(o.Key)
			if k == "" {
				return Battery{}, fmt.Errorf("question %d option %d: %w", i+1, j+1, ErrEmptyKey)
			}
			if _, dup := seen[k]; dup {
				return Battery{}, fmt.Errorf("question %d key %q: %w", i+1, k, ErrDuplicateKey)
			}
			seen[k] = struct{}{}
			opts[j] = Option{Key: k, Text: o.Text, Genres: append([]string(nil), o.Genres...)}
		}
		out[i] = Question{Prompt: q.Prompt, Options: opts}
	}
	return Battery{questions: out}, nil
}

// MustBattery is NewBattery for static definitions.
func MustBattery(qs []Question) Battery {
	b, err := NewBattery(qs)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Battery) Len() int { return len(b.questions) }

// Question returns a copy of question i; it panics when i is out of range
// like a slice index.
func (b Battery) Question(i int) Question { return b.questions[i].clone() }

// Questions returns a copy safe to hand to encoders or callers.
func (b Battery) Questions() []Question {
	out := make([]Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.clone()
	}
	return out
}

func (q Question) clone() Question {
	opts := make([]Option, len(q.Options))
	for j, o := range q.Options {
		opts[j] = Option{Key: o.Key, Text: o.Text, Genres: append([]string(nil), o.Genres...)}
	}
	return Question{Prompt: q.Prompt, Options: opts}
}

func normalizeKey(k string) string { return strings.ToUpper(strings.TrimSpace(k)) }
