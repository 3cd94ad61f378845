package core

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// FindFiles returns the files directly inside path whose extension equals
// extension, compared case-sensitively without the leading separator.
// An empty extension matches every file. Directories are never returned.
func FindFiles(b Backend, path, extension string) ([]string, error) {
	var result []string
	err := b.Enumerate(path, extensionFilter(&result, extension))
	return result, err
}

// FindFilesRecursive is FindFiles over the whole tree below path.
func FindFilesRecursive(b Backend, path, extension string) ([]string, error) {
	var result []string
	err := EnumerateRecursive(b, path, extensionFilter(&result, extension))
	return result, err
}

func extensionFilter(result *[]string, extension string) Visitor {
	want := strings.TrimPrefix(extension, string(pathutil.ExtensionSeparator))
	return func(path string, isDir bool) error {
		if isDir {
			return nil
		}
		if want != "" && pathutil.Extension(pathutil.Filename(path), false) != want {
			return nil
		}
		*result = append(*result, path)
		return nil
	}
}

// FindFilesMatching returns the files below root whose path relative to
// root matches the doublestar glob pattern, such as "**/*.mesh" or
// "textures/*.{png,dds}".
func FindFilesMatching(b Backend, root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.WithContext(
			errors.WithOp(errors.New(errors.CodeInvalidInput, "invalid glob pattern"), "find_files_matching", root),
			"pattern", pattern,
		)
	}

	prefix := pathutil.AddSeparator(root)
	var result []string
	err := EnumerateRecursive(b, prefix, func(path string, isDir bool) error {
		if isDir {
			return nil
		}
		if doublestar.MatchUnvalidated(pattern, pathutil.Normalize(path[len(prefix):])) {
			result = append(result, path)
		}
		return nil
	})
	return result, err
}
