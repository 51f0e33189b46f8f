package billstore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
)

// Store persists rendered bills to flat files: every bill is appended
// to one combined log and also written to its own file under a dated
// directory. The combined log is append-only; nothing ever rewrites or
// deletes a record.
type Store struct {
	mu           sync.Mutex
	combinedPath string
	billsDir     string
}

// New returns a store rooted at the given paths. Directories are
// created lazily on first write.
func New(combinedPath, billsDir string) *Store {
	return &Store{combinedPath: combinedPath, billsDir: billsDir}
}

// CombinedPath reports where the combined log lives, for API responses
// and operator messages.
func (s *Store) CombinedPath() string { return s.combinedPath }

// Append adds one rendered bill to the combined log, creating the log
// on first use. A blank line separates records. Callers treat failures
// as best-effort: the bill itself already exists in memory.
func (s *Store) Append(billText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.combinedPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return clinic.Persistf("append bill", err)
		}
	}
	f, err := os.OpenFile(s.combinedPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return clinic.Persistf("append bill", err)
	}
	defer f.Close()
	if _, err := f.WriteString(billText + "\n\n"); err != nil {
		return clinic.Persistf("append bill", err)
	}
	return nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

// sanitizeName reduces a patient name to filename-safe characters,
// collapsing each unsafe run to one underscore. Only an empty name
// falls back to "patient".
func sanitizeName(name string) string {
	safe := unsafeNameChars.ReplaceAllString(name, "_")
	if safe == "" {
		return "patient"
	}
	return safe
}

// SaveIndividual writes billText to its own file under a directory
// named for the bill date, e.g. bills/2025-01-30/Ali_Khan_bill_20250130_143000.txt,
// and returns the path. The one-second timestamp granularity keeps
// names unique in practice.
func (s *Store) SaveIndividual(billText, patientName string, at time.Time) (string, error) {
	dateDir := filepath.Join(s.billsDir, at.Format("2006-01-02"))
	if err := os.MkdirAll(dateDir, 0o755); err != nil {
		return "", clinic.Persistf("save bill file", err)
	}
	name := fmt.Sprintf("%s_bill_%s.txt", sanitizeName(patientName), at.Format("20060102_150405"))
	path := filepath.Join(dateDir, name)
	if err := os.WriteFile(path, []byte(billText+"\n"), 0o644); err != nil {
		return "", clinic.Persistf("save bill file", err)
	}
	return path, nil
}
