// Package testutil provides shared fixtures for fittrack package tests.
package testutil

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/roach88/fittrack/internal/store"
)

// DefaultPassword satisfies the password complexity rules.
const DefaultPassword = "Secret!Pass"

// NewStore opens an in-memory store that is closed when the test ends.
func NewStore(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Options{
		Path:   store.MemoryPath,
		Logger: zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// SeedUser inserts an account row directly, bypassing validation.
func SeedUser(t testing.TB, st *store.Store, username string) {
	t.Helper()
	_, err := st.Insert(context.Background(),
		"INSERT INTO users (username, password) VALUES (?, ?)", username, DefaultPassword)
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
}
