package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/spf13/cast"

	"github.com/amlstats/alert_analyzer/domain/models"
)

const SEPARATOR = ','

// Column is one fully loaded column. Numeric columns keep parsed values in
// Floats, text columns keep raw cell contents in Texts; Missing marks null
// cells in either representation.
type Column struct {
	Name    string
	Type    string // models.TypeInt, models.TypeFloat or models.TypeString
	Floats  []float64
	Texts   []string
	Missing []bool
}

func (c *Column) IsNumeric() bool {
	return c.Type == models.TypeInt || c.Type == models.TypeFloat
}

// Values returns the non-null numeric values of the column.
func (c *Column) Values() []float64 {
	values := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if c.Missing[i] {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Dataset is the immutable in-memory table every analysis runs over.
type Dataset struct {
	Columns []Column
	Rows    int

	index map[string]int
}

func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return &d.Columns[i], true
}

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// MissingColumns reports which of the given columns are absent. Each
// computation declares its required columns through this check instead of
// probing the table ad hoc.
func (d *Dataset) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !d.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Cell renders the cell at (column, row) the way it appeared in the input,
// with "" for nulls.
func (d *Dataset) Cell(col *Column, row int) string {
	if col.Missing[row] {
		return ""
	}
	if col.IsNumeric() {
		if col.Type == models.TypeInt {
			return strconv.FormatInt(int64(col.Floats[row]), 10)
		}
		return strconv.FormatFloat(col.Floats[row], 'g', -1, 64)
	}
	return col.Texts[row]
}

// LoadCSV reads a delimited file into a typed Dataset. Archives (.gz,
// .lz4, .zip) are unpacked next to the source first. The type of every
// column is decided by a priority ladder over all cells: a single
// unparseable value demotes the column to String.
func LoadCSV(path string) (*Dataset, error) {
	if unpacked, err := unpackArchive(path); err != nil {
		return nil, fmt.Errorf("unpack %s: %w", path, err)
	} else if unpacked != "" {
		path = unpacked
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = SEPARATOR
	r.LazyQuotes = true

	rawHeaders, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	headers := cleanHeaders(rawHeaders)

	var records [][]string
	for {
		values, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(values) != len(headers) {
			continue
		}
		records = append(records, values)
	}

	types := inferColumnTypes(headers, records)

	ds := &Dataset{
		Columns: make([]Column, len(headers)),
		Rows:    len(records),
		index:   map[string]int{},
	}
	for i, header := range headers {
		col := Column{
			Name:    header,
			Type:    types[i],
			Missing: make([]bool, len(records)),
		}
		if col.IsNumeric() {
			col.Floats = make([]float64, len(records))
		} else {
			col.Texts = make([]string, len(records))
		}
		for j, record := range records {
			cell := record[i]
			if col.IsNumeric() {
				trimmed := strings.TrimSpace(cell)
				if trimmed == "" {
					col.Missing[j] = true
					continue
				}
				col.Floats[j] = cast.ToFloat64(trimmed)
			} else {
				col.Texts[j] = cell
				col.Missing[j] = cell == ""
			}
		}
		ds.Columns[i] = col
		ds.index[header] = i
	}
	return ds, nil
}

// inferColumnTypes walks all cells keeping the heaviest type seen per
// column. Empty cells do not vote.
func inferColumnTypes(headers []string, records [][]string) []string {
	typesWeight := []string{"", models.TypeInt, models.TypeFloat, models.TypeString}
	types := make([]string, len(headers))

	for _, record := range records {
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			t := models.TypeString
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				t = models.TypeInt
			} else if _, err := cast.ToFloat64E(cell); err == nil {
				t = models.TypeFloat
			}
			if SearchStrings(typesWeight, t) > SearchStrings(typesWeight, types[i]) {
				types[i] = t
			}
		}
	}
	for i, t := range types {
		if t == "" {
			types[i] = models.TypeString
		}
	}
	return types
}

func SearchStrings(a []string, x string) int {
	for i, s := range a {
		if s == x {
			return i
		}
	}
	return -1
}

var specialSymbols = regexp.MustCompile("[^a-zA-Z0-9]+")

func replaceSpecialSymbols(input string) string {
	processed := specialSymbols.ReplaceAllString(input, "_")
	processed = strings.ReplaceAll(processed, "__", "_")
	return strings.Trim(processed, "_")
}

// cleanHeaders normalizes header names (transliterated, lowercased, special
// symbols collapsed) and disambiguates duplicates with a numeric suffix.
func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		cleaned := strings.ToLower(replaceSpecialSymbols(unidecode.Unidecode(h)))
		if cleaned == "" {
			cleaned = fmt.Sprintf("column_%d", i+1)
		}
		headers[i] = cleaned
	}

	seen := map[string]bool{}
	for i, header := range headers {
		name := header
		for counter := 1; seen[name]; counter++ {
			name = fmt.Sprintf("%s_%d", header, counter)
		}
		seen[name] = true
		headers[i] = name
	}
	return headers
}
