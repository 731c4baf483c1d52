package http

import (
	"bytes"

	"github.com/goccy/go-json"
)

// GenreList accepts either ["crime","drama"] or "crime, drama"; the catalog
// normalizer splits on commas either way.
type GenreList []string

func (g *GenreList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*g = GenreList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*g = list
	return nil
}
