package pathutil

import (
	"strings"
	"unicode"

	"github.com/jmgilman/go/vfs/errors"
)

const parentMarker = "/.."

// Canonicalize resolves ".." segments in a normalized path, then strips
// every "./". It never consults the file system.
//
// It fails with CodeInvalidPath, returning path unchanged, when the path
// would ascend past its start or when a ':' scheme or drive marker lies
// between a ".." and the segment it cancels.
func Canonicalize(path string) (string, error) {
	result := path

	for result != "" {
		if strings.HasPrefix(result, "..") || strings.HasPrefix(result, parentMarker) {
			return path, invalidPath("path ascends past its root", path)
		}

		index := strings.Index(result, parentMarker)
		if index < 0 {
			break
		}

		// Walk back to the separator that starts the segment cancelled by
		// this "..", skipping bare "." segments.
		start := index
		for {
			start = strings.LastIndexByte(result[:start], DirectorySeparator)
			if start <= 0 {
				break
			}
			if index-start > 1 && (result[start+1] != '.' || result[start+2] != DirectorySeparator) {
				break
			}
		}

		if start < 0 {
			break
		}

		if colon := strings.IndexByte(result[start:], VolumeSeparator); colon >= 0 {
			colon += start
			if colon != 0 && colon < index {
				return path, invalidPath("path ascends across a scheme or drive", path)
			}
		}

		result = result[:start] + result[index+len(parentMarker):]
	}

	return strings.ReplaceAll(result, "./", ""), nil
}

// Relative returns the path that leads from source to target.
//
// Both inputs are normalized and canonicalized, then compared segment by
// segment. Inputs whose first segments are drives ("x:") with different
// letters have no relative path and fail with CodeInvalidPath.
func Relative(source, target string) (string, error) {
	normalizedSource, err := Canonicalize(Normalize(source))
	if err != nil {
		return "", errors.WithContext(err, "target", target)
	}
	normalizedTarget, err := Canonicalize(Normalize(target))
	if err != nil {
		return "", errors.WithContext(err, "source", source)
	}

	sourceParts := Segments(normalizedSource)
	targetParts := Segments(normalizedTarget)

	if len(sourceParts) > 0 && len(targetParts) > 0 {
		first, second := sourceParts[0], targetParts[0]
		if len(first) > 1 && len(second) > 1 && IsVolumeSeparator(first[1]) && IsVolumeSeparator(second[1]) &&
			unicode.ToLower(rune(first[0])) != unicode.ToLower(rune(second[0])) {
			return "", errors.WithContextMap(
				errors.New(errors.CodeInvalidPath, "paths are on different drives"),
				map[string]interface{}{"source": source, "target": target},
			)
		}
	}

	for len(sourceParts) > 0 && len(targetParts) > 0 && sourceParts[0] == targetParts[0] {
		sourceParts = sourceParts[1:]
		targetParts = targetParts[1:]
	}

	return strings.Repeat("../", len(sourceParts)) + strings.Join(targetParts, string(DirectorySeparator)), nil
}

func invalidPath(message, path string) error {
	return errors.WithOp(errors.New(errors.CodeInvalidPath, message), "canonicalize", path)
}
