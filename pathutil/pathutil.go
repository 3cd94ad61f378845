package pathutil

import (
	"strings"
)

const (
	// DirectorySeparator is the canonical directory separator.
	DirectorySeparator = '/'
	// AlternativeDirectorySeparator is rewritten to DirectorySeparator by Normalize.
	AlternativeDirectorySeparator = '\\'
	// ExtensionSeparator starts a file extension.
	ExtensionSeparator = '.'
	// VolumeSeparator terminates a drive letter or scheme.
	VolumeSeparator = ':'
	// SchemeMarker separates a scheme from the rest of a path.
	SchemeMarker = "://"
)

const separators = "/\\"

// IsDirectorySeparator reports whether c is either directory separator.
func IsDirectorySeparator(c byte) bool {
	return c == DirectorySeparator || c == AlternativeDirectorySeparator
}

// IsVolumeSeparator reports whether c is the volume separator.
func IsVolumeSeparator(c byte) bool {
	return c == VolumeSeparator
}

// IsExtensionSeparator reports whether c is the extension separator.
func IsExtensionSeparator(c byte) bool {
	return c == ExtensionSeparator
}

// IsAbsolute reports whether path starts with a directory separator.
func IsAbsolute(path string) bool {
	return path != "" && IsDirectorySeparator(path[0])
}

// IsNormalized reports whether path uses only the canonical separator.
func IsNormalized(path string) bool {
	return strings.IndexByte(path, AlternativeDirectorySeparator) < 0
}

// Append joins sub onto path with exactly one separator between them.
// No separator is inserted when sub already starts with one, and an empty
// sub leaves path unchanged.
func Append(path, sub string) string {
	if sub == "" {
		return path
	}
	if !IsDirectorySeparator(sub[0]) {
		path = AddSeparator(path)
	}
	return path + sub
}

// Combine left-folds Append over parts.
func Combine(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	result := parts[0]
	for _, part := range parts[1:] {
		result = Append(result, part)
	}
	return result
}

// AddSeparator appends a separator to a non-empty path that does not
// already end with one.
func AddSeparator(path string) string {
	if path == "" || IsDirectorySeparator(path[len(path)-1]) {
		return path
	}
	return path + string(DirectorySeparator)
}

// RemoveSeparator drops any trailing separators.
func RemoveSeparator(path string) string {
	return strings.TrimRight(path, separators)
}

// ChangeExtension truncates path at its last extension separator and
// appends ext, inserting the separator when ext lacks one. An empty ext
// removes the extension.
func ChangeExtension(path, ext string) string {
	if i := strings.LastIndexByte(path, ExtensionSeparator); i >= 0 {
		path = path[:i]
	}
	if ext == "" {
		return path
	}
	if !IsExtensionSeparator(ext[0]) {
		path += string(ExtensionSeparator)
	}
	return path + ext
}

// ChangeFilename replaces everything after the last directory separator
// with name. A path without a separator is replaced entirely.
func ChangeFilename(path, name string) string {
	return Directory(path) + name
}

// Extension returns the suffix starting at the last extension separator.
// The separator itself is included only when includeSeparator is set.
// Returns "" when path has no extension separator.
func Extension(path string, includeSeparator bool) string {
	i := strings.LastIndexByte(path, ExtensionSeparator)
	if i < 0 {
		return ""
	}
	if !includeSeparator {
		i++
	}
	return path[i:]
}

// Filename returns the part of path after its last directory separator.
func Filename(path string) string {
	if i := strings.LastIndexAny(path, separators); i >= 0 {
		return path[i+1:]
	}
	return path
}

// BaseFilename returns Filename without its extension.
func BaseFilename(path string) string {
	name := Filename(path)
	if i := strings.LastIndexByte(name, ExtensionSeparator); i >= 0 {
		return name[:i]
	}
	return name
}

// Directory returns path up to and including its last directory separator,
// or "" when there is none.
func Directory(path string) string {
	if i := strings.LastIndexAny(path, separators); i >= 0 {
		return path[:i+1]
	}
	return ""
}

// Scheme returns the text before the last "://" marker, or "".
func Scheme(path string) string {
	if i := strings.LastIndex(path, SchemeMarker); i >= 0 {
		return path[:i]
	}
	return ""
}

// Split returns the directory, base filename and extension (without
// separator) of path.
func Split(path string) (dir, base, ext string) {
	return Directory(path), BaseFilename(path), Extension(path, false)
}

// Segments splits path on either separator, dropping empty segments.
func Segments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == DirectorySeparator || r == AlternativeDirectorySeparator
	})
}

// Normalize rewrites every alternative separator to the canonical one.
func Normalize(path string) string {
	return strings.ReplaceAll(path, string(AlternativeDirectorySeparator), string(DirectorySeparator))
}
