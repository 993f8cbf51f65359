package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// GenerateDescribeTable renders per-numeric-column summary statistics as
// an ascii table, one column of the table per numeric dataset column.
func GenerateDescribeTable(ds *Dataset) string {
	numeric := []*Column{}
	for i := range ds.Columns {
		if ds.Columns[i].IsNumeric() {
			numeric = append(numeric, &ds.Columns[i])
		}
	}
	if len(numeric) == 0 {
		return "no numeric columns"
	}

	t := table.NewWriter()
	header := table.Row{"stat"}
	for _, col := range numeric {
		header = append(header, col.Name)
	}
	t.AppendHeader(header)

	rows := map[string]table.Row{
		"count": {"count"}, "mean": {"mean"}, "min": {"min"},
		"25%": {"25%"}, "50%": {"50%"}, "75%": {"75%"}, "max": {"max"},
	}
	for _, col := range numeric {
		summary, ok := summarizeNumbers(col.Values())
		if !ok {
			for name := range rows {
				rows[name] = append(rows[name], "-")
			}
			continue
		}
		rows["count"] = append(rows["count"], summary.Count)
		rows["mean"] = append(rows["mean"], formatFloat(summary.Mean))
		rows["min"] = append(rows["min"], formatFloat(summary.Min))
		rows["25%"] = append(rows["25%"], formatFloat(summary.Q1))
		rows["50%"] = append(rows["50%"], formatFloat(summary.Median))
		rows["75%"] = append(rows["75%"], formatFloat(summary.Q3))
		rows["max"] = append(rows["max"], formatFloat(summary.Max))
	}
	for _, name := range []string{"count", "mean", "min", "25%", "50%", "75%", "max"} {
		t.AppendRows([]table.Row{rows[name]})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateHeadTable renders the first n rows of the dataset.
func GenerateHeadTable(ds *Dataset, n int) string {
	if n > ds.Rows {
		n = ds.Rows
	}
	t := table.NewWriter()
	header := table.Row{"#"}
	for _, col := range ds.Columns {
		header = append(header, col.Name)
	}
	t.AppendHeader(header)
	for row := 0; row < n; row++ {
		r := table.Row{row}
		for i := range ds.Columns {
			r = append(r, ds.Cell(&ds.Columns[i], row))
		}
		t.AppendRows([]table.Row{r})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// printDataOverview mirrors the load-time diagnostics: shape, describe and
// head of the freshly loaded table.
func printDataOverview(ds *Dataset) {
	fmt.Printf("Data Shape: (%d, %d)\n", ds.Rows, len(ds.Columns))
	fmt.Println("Data Statistics:")
	fmt.Println(GenerateDescribeTable(ds))
	fmt.Println("Data Head:")
	fmt.Println(GenerateHeadTable(ds, 5))
}
