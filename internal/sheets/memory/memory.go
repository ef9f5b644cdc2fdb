// Package memory is an in-process stand-in for the Google Sheets adapter,
// used in tests and when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"khata/internal/core"
)

type Store struct {
	mu    sync.Mutex
	title string
	lines []string
	rows  []core.Transaction
}

func New() *Store {
	return &Store{}
}

// WriteReport replaces the stored report.
func (s *Store) WriteReport(_ context.Context, title string, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.lines = append([]string(nil), lines...)
	return nil
}

// AppendTransaction stores the transaction and returns a synthetic row
// reference.
func (s *Store) AppendTransaction(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, tx)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Report returns the last written report.
func (s *Store) Report() (string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title, append([]string(nil), s.lines...)
}

// Rows returns the appended transactions.
func (s *Store) Rows() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.rows...)
}
