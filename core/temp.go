package core

import (
	"math/rand/v2"

	"github.com/jmgilman/go/vfs/pathutil"
)

// CreateTemporaryFilePath returns a path under dir named
// {prefix}{32 hex digits}{suffix} that does not exist yet. Names are
// regenerated while they collide with an existing entry. The file itself is
// not created.
func CreateTemporaryFilePath(b Backend, dir, prefix, suffix string) (string, error) {
	for {
		candidate := pathutil.Append(dir, pathutil.UniqueFilename(prefix, suffix))
		exists, err := b.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

// CreateRandomTemporaryFilePath is CreateTemporaryFilePath using a
// readable 16-character token drawn from r.
func CreateRandomTemporaryFilePath(b Backend, r *rand.Rand, dir, prefix, suffix string) (string, error) {
	for {
		candidate := pathutil.Append(dir, pathutil.RandomFilename(r, prefix, suffix))
		exists, err := b.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}
