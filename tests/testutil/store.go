// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/facildate/taskboard/internal/draft"
)

// NewDraftStore creates an in-memory draft store with all migrations
// applied. It automatically closes the store when the test completes.
func NewDraftStore(t *testing.T) *draft.Store {
	t.Helper()

	s, err := draft.NewStore(":memory:")
	if err != nil {
		t.Fatalf("creating test draft store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test draft store: %v", err)
		}
	})

	return s
}
