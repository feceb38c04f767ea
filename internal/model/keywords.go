package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadKeywords reads the tracked keywords file. The file is either a CSV with
// a "keyword" column or a plain list with one keyword per line; blanks and
// duplicates are dropped, order is preserved.
func LoadKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keywords file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadKeywords(f)
}

// ReadKeywords parses keywords from a reader.
func ReadKeywords(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// A "keyword" header selects that column; otherwise every first field is
	// taken as a keyword.
	col, start := 0, 0
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), "keyword") {
			col, start = i, 1
			break
		}
	}

	seen := make(map[string]bool)
	var keywords []string
	for _, record := range records[start:] {
		if len(record) <= col {
			continue
		}
		kw := strings.TrimSpace(record[col])
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	return keywords, nil
}
