package testutil

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Golden compares output against testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./... -update
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, got)
}

// GoldenString is like Golden but takes a string.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}
