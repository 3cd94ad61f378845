// Package backendtest provides a conformance test suite for validating
// core.Backend implementations.
//
// The suite checks the primitive contracts (streams, metadata, single-level
// directory operations, enumeration, write locking) and runs the composite
// algorithms of package core against the backend, so every implementation is
// held to the same observable behavior.
//
// Example usage:
//
//	func TestBackend(t *testing.T) {
//	    backendtest.Run(t, func(t *testing.T) (core.Backend, string) {
//	        return mybackend.New(), t.TempDir()
//	    }, backendtest.DefaultConfig())
//	}
package backendtest

import (
	"slices"
	"testing"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// Factory returns a fresh backend and an existing, empty directory on it
// that the tests may populate.
type Factory func(t *testing.T) (core.Backend, string)

// Config configures the suite to match backend capabilities.
type Config struct {
	// Locking indicates OpenWrite takes an exclusive write lock that a second
	// OpenWrite on the same path observes.
	Locking bool

	// Readonly indicates SetReadonly can change write protection.
	Readonly bool

	// Symlink creates a symbolic link named link that points at target. The
	// Links group runs only when it is set.
	Symlink func(b core.Backend, target, link string) error

	// SkipTests lists specific test names to skip.
	// Format: "Group/SubTest" (e.g., "Streams/AppendMode").
	SkipTests []string
}

// DefaultConfig returns the configuration for a fully capable backend.
func DefaultConfig() Config {
	return Config{
		Locking:  true,
		Readonly: true,
	}
}

// Run runs every conformance group against backends produced by newBackend.
func Run(t *testing.T, newBackend Factory, config Config) {
	groups := []struct {
		name string
		run  func(*testing.T, Factory, Config)
	}{
		{"Streams", testStreams},
		{"Primitives", testPrimitives},
		{"Composites", testComposites},
		{"Locking", testLocking},
		{"Links", testLinks},
	}

	for _, group := range groups {
		t.Run(group.name, func(t *testing.T) {
			if shouldSkip(config, group.name) {
				t.Skip("Skipped by backend configuration")
			}
			group.run(t, newBackend, config)
		})
	}
}

type subtest struct {
	name string
	run  func(t *testing.T, b core.Backend, root string, config Config)
}

// runSubtests runs each subtest against its own fresh backend.
func runSubtests(t *testing.T, group string, newBackend Factory, config Config, tests []subtest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if shouldSkip(config, group+"/"+tt.name) {
				t.Skip("Skipped by backend configuration")
			}
			b, root := newBackend(t)
			tt.run(t, b, root, config)
		})
	}
}

func shouldSkip(config Config, name string) bool {
	return slices.Contains(config.SkipTests, name)
}

// skipIfNotImplemented skips the test when err reports an unsupported
// operation.
func skipIfNotImplemented(t *testing.T, err error) {
	t.Helper()
	if errors.IsStatus(err, errors.CodeNotImplemented) {
		t.Skipf("operation not supported by backend: %v", err)
	}
}
