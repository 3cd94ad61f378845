package core

// EnumerateRecursive walks the tree below path depth-first in pre-order.
// Each entry is reported to visitor before its children; a directory is
// descended into only when its visit succeeded.
func EnumerateRecursive(b Backend, path string, visitor Visitor) error {
	var recurse Visitor
	recurse = func(entry string, isDir bool) error {
		if err := visitor(entry, isDir); err != nil {
			return err
		}
		if isDir {
			return b.Enumerate(entry, recurse)
		}
		return nil
	}
	return b.Enumerate(path, recurse)
}

// EnumerateRecursiveInfo is EnumerateRecursive reporting FileInfo.
func EnumerateRecursiveInfo(b Backend, path string, visitor InfoVisitor) error {
	var recurse InfoVisitor
	recurse = func(entry string, info FileInfo) error {
		if err := visitor(entry, info); err != nil {
			return err
		}
		if info.IsDirectory {
			return b.EnumerateInfo(entry, recurse)
		}
		return nil
	}
	return b.EnumerateInfo(path, recurse)
}
