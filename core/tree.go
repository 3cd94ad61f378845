package core

import (
	"strings"

	"github.com/jmgilman/go/vfs/errors"
)

// DirectoryTreeCreate creates path and every missing parent, one prefix at
// a time. A DirectoryCreate failure is tolerated when the prefix exists
// afterwards; otherwise the create error is returned and the prefixes made
// so far are left in place.
func DirectoryTreeCreate(b Backend, path string) error {
	if path == "" {
		return errors.WithOp(errors.New(errors.CodeInvalidPath, "empty path"), "directory_tree_create", path)
	}

	for position := 0; position >= 0; {
		next := strings.IndexAny(path[position+1:], `/\`)
		prefix := path
		if next >= 0 {
			position += next + 1
			prefix = path[:position]
		} else {
			position = -1
		}

		if err := b.DirectoryCreate(prefix); err != nil {
			exists, existsErr := b.Exists(prefix)
			if existsErr != nil || !exists {
				return err
			}
		}
	}

	exists, err := b.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return errors.WithOp(errors.New(errors.CodeNotFound, "directory was not created"), "directory_tree_create", path)
	}
	return nil
}

// DirectoryTreeDelete deletes path and everything below it. Read-only files
// are made writable before they are deleted. The first failure stops the
// traversal and leaves the rest of the tree in place.
func DirectoryTreeDelete(b Backend, path string) error {
	var remove Visitor
	remove = func(entry string, isDir bool) error {
		if isDir {
			if err := b.Enumerate(entry, remove); err != nil {
				return err
			}
			return b.DirectoryDelete(entry)
		}
		if err := b.SetReadonly(entry, false); err != nil {
			return err
		}
		return b.FileDelete(entry)
	}

	if err := remove(path, true); err != nil {
		return err
	}

	exists, err := b.Exists(path)
	if err != nil {
		return err
	}
	if exists {
		return errors.WithOp(errors.New(errors.CodeFailure, "directory still exists after delete"), "directory_tree_delete", path)
	}
	return nil
}
