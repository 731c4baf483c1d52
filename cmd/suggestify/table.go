package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mind-engage/suggestify/internal/catalog"
)

func renderShows(shows []catalog.Show) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Year", "Genres"})
	for i, s := range shows {
		year := ""
		if s.Year > 0 {
			year = strconv.Itoa(s.Year)
		}
		tw.AppendRow(table.Row{i + 1, s.Title, year, s.Genres})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, WidthMax: 48},
	})
	return tw.Render()
}
