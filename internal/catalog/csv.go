package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrMalformedCSV = errors.New("catalog: malformed csv")
	ErrEmptyCatalog = errors.New("catalog: no shows")
)

// column aliases, first match wins
var csvColumns = map[string][]string{
	"title":       {"title", "primarytitle"},
	"year":        {"year", "start_year", "startyear"},
	"genres":      {"genres", "genre"},
	"description": {"description", "overview", "plot"},
}

// ReadCSV parses a header-first CSV into shows. title and genres columns are
// required; year and description are optional.
func ReadCSV(r io.Reader) ([]Show, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	hdr, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	idx := map[string]int{}
	for i, h := range hdr {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	col := map[string]int{}
	for field, aliases := range csvColumns {
		col[field] = -1
		for _, a := range aliases {
			if i, ok := idx[a]; ok {
				col[field] = i
				break
			}
		}
	}
	for _, req := range []string{"title", "genres"} {
		if col[req] < 0 {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedCSV, req)
		}
	}

	cell := func(rec []string, field string) string {
		i := col[field]
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	shows := []Show{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
		year, err := parseYear(cell(rec, "year"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
		title, genres := cell(rec, "title"), cell(rec, "genres")
		switch {
		case title == "":
			return nil, fmt.Errorf("%w: line %d: empty title", ErrMalformedCSV, line)
		case genres == "":
			return nil, fmt.Errorf("%w: line %d: %q has no genres", ErrMalformedCSV, line, title)
		}
		shows = append(shows, Show{
			Title:       title,
			Year:        year,
			Genres:      genres,
			Description: cell(rec, "description"),
		})
	}
	return shows, nil
}

// parseYear reads the leading digits so "2008-2013" yields 2008. Empty and
// \N cells mean unknown (0).
func parseYear(s string) (int, error) {
	if s == "" || s == `\N` {
		return 0, nil
	}
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("bad year %q", s)
	}
	return strconv.Atoi(s[:n])
}

// LoadCSVFile reads a catalog file. An unreadable file or one without shows
// is an error.
func LoadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	shows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if len(shows) == 0 {
		return nil, fmt.Errorf("read catalog %s: %w", path, ErrEmptyCatalog)
	}
	return NewTable(shows), nil
}
