package billstore

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
)

// DisplayLimit caps how many matching records one search returns in
// full. The total match count is always reported alongside.
const DisplayLimit = 10

// recordBoundary marks where one log record ends and the next begins:
// a run of five or more '=' (the receipt title and closing rules) or
// three or more consecutive newlines. Boundaries are re-derived on
// every search; the log itself stores no explicit delimiters.
var recordBoundary = regexp.MustCompile(`={5,}|\n{3,}`)

// SearchResult carries the matches for one query. Records holds at
// most DisplayLimit entries; Total counts every match.
type SearchResult struct {
	Total   int      `json:"total"`
	Records []string `json:"records"`
}

// Remaining is the number of matches beyond the display cap.
func (r *SearchResult) Remaining() int {
	return r.Total - len(r.Records)
}

// Search scans the combined log for records containing the query,
// case-insensitively. A blank query is a validation error; a log that
// does not exist yet is a not-found error, distinct from an existing
// log with zero matches.
func (s *Store) Search(query string) (*SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, clinic.Invalidf("search query is required")
	}

	s.mu.Lock()
	content, err := os.ReadFile(s.combinedPath)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, clinic.NotFoundf("no bill records exist yet")
		}
		return nil, clinic.Persistf("search bills", err)
	}

	result := &SearchResult{Records: []string{}}
	for _, record := range splitRecords(string(content)) {
		if !strings.Contains(strings.ToLower(record), query) {
			continue
		}
		result.Total++
		if len(result.Records) < DisplayLimit {
			result.Records = append(result.Records, record)
		}
	}
	return result, nil
}

// splitRecords segments the log, starting a new record at every
// boundary match. Fragments are trimmed and whitespace-only ones are
// dropped. Best effort by nature: a bill whose own text carries a long
// '=' run splits mid-record, which costs display fidelity but never a
// match.
func splitRecords(content string) []string {
	var out []string
	keep := func(fragment string) {
		if trimmed := strings.TrimSpace(fragment); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	prev := 0
	for _, b := range recordBoundary.FindAllStringIndex(content, -1) {
		if b[0] > prev {
			keep(content[prev:b[0]])
		}
		prev = b[0]
	}
	keep(content[prev:])
	return out
}
