// Package geo resolves free-text place mentions to Metropolitan Statistical
// Areas. Candidate spans come from named-entity recognition, pass a series of
// false-positive filters, and are fuzzy-matched against a fixed city table.
package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is the static city-to-MSA lookup, loaded once per process and passed
// by reference into the resolver.
type Table struct {
	cityToMSA map[string]string
	cities    []string
}

// LoadTable reads a CSV with City and MSA columns.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open city table: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadTable(f)
}

// ReadTable parses City,MSA rows from a reader. The header row is required;
// column order is taken from it.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read city table header: %w", err)
	}

	cityCol, msaCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "City":
			cityCol = i
		case "MSA":
			msaCol = i
		}
	}
	if cityCol < 0 || msaCol < 0 {
		return nil, fmt.Errorf("city table: missing City or MSA column")
	}

	table := &Table{cityToMSA: make(map[string]string)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read city table: %w", err)
		}
		if len(record) <= cityCol || len(record) <= msaCol {
			continue
		}

		city := strings.TrimSpace(record[cityCol])
		msa := strings.TrimSpace(record[msaCol])
		if city == "" || msa == "" {
			continue
		}
		if _, dup := table.cityToMSA[city]; !dup {
			table.cities = append(table.cities, city)
		}
		table.cityToMSA[city] = msa
	}

	return table, nil
}

// Cities returns the known city names in table order.
func (t *Table) Cities() []string {
	return t.cities
}

// MSA returns the metro region for a city.
func (t *Table) MSA(city string) (string, bool) {
	msa, ok := t.cityToMSA[city]
	return msa, ok
}

// Len returns the number of known cities.
func (t *Table) Len() int {
	return len(t.cities)
}
