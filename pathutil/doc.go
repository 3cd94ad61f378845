// Package pathutil provides string-only path manipulation for the virtual
// file system.
//
// Every function in this package is pure: nothing here touches the file
// system. Paths are plain strings using '/' as the canonical directory
// separator; '\' is accepted as an alternative separator and rewritten by
// Normalize. Functions that edit a path return the edited copy.
//
// Canonicalize resolves ".." segments without consulting the file system and
// refuses to ascend past the start of the path or across a scheme or drive
// marker:
//
//	p, err := pathutil.Canonicalize("/base/long/path/../../relative")
//	// p == "/base/relative"
//
//	_, err = pathutil.Canonicalize("/../etc")
//	// errors.StatusOf(err) == errors.CodeInvalidPath
package pathutil
