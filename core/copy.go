package core

import (
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// CopyBufferSize is the largest chunk FileCopy moves at once.
const CopyBufferSize = 1024 * 1024

// FileCopy copies source to destination, replacing destination's content.
// A single buffer of min(CopyBufferSize, size) bytes is reused for every
// chunk.
func FileCopy(b Backend, destination, source string) (err error) {
	src, err := b.OpenRead(source, false)
	if err != nil {
		return err
	}
	defer src.Close()

	size, err := src.Size()
	if err != nil {
		return err
	}
	if size < 0 {
		return errors.WithOp(errors.Newf(errors.CodeFailure, "source reports negative size %d", size), "file_copy", source)
	}

	dst, err := b.OpenWrite(destination, false, false)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if size == 0 {
		return nil
	}

	buffer := make([]byte, min(int64(CopyBufferSize), size))
	for size > 0 {
		part := buffer[:min(int64(len(buffer)), size)]

		if _, err := src.Read(part); err != nil {
			return errors.WithContextMap(err, copyContext(destination, source))
		}
		if _, err := dst.Write(part); err != nil {
			return errors.WithContextMap(err, copyContext(destination, source))
		}

		size -= int64(len(part))
	}

	return nil
}

func copyContext(destination, source string) map[string]interface{} {
	return map[string]interface{}{
		"source":      source,
		"destination": destination,
	}
}

// MoveByCopy moves source to destination by copying it and deleting the
// original. Backends use it when a rename crosses volumes.
func MoveByCopy(b Backend, destination, source string) error {
	if err := FileCopy(b, destination, source); err != nil {
		return err
	}
	return b.FileDelete(source)
}

// DirectoryTreeCopy copies every file and directory below source into
// destination. Both must already exist. Existing destination files are
// deleted first when overwrite is set; otherwise FileCopy replaces them.
// Symbolic links are skipped.
func DirectoryTreeCopy(b Backend, destination, source string, overwrite bool) error {
	for _, p := range []string{source, destination} {
		ok, err := b.Exists(p)
		if err != nil {
			return err
		}
		if !ok {
			return errors.WithOp(errors.New(errors.CodeNotFound, "path does not exist"), "directory_tree_copy", p)
		}
	}

	source = pathutil.AddSeparator(pathutil.Normalize(source))
	destination = pathutil.AddSeparator(pathutil.Normalize(destination))

	return EnumerateRecursiveInfo(b, source, func(path string, info FileInfo) error {
		if info.IsLink {
			return nil
		}

		target := destination + path[len(source):]

		if info.IsDirectory {
			return DirectoryTreeCreate(b, target)
		}

		if overwrite {
			exists, err := b.Exists(target)
			if err != nil {
				return err
			}
			if exists {
				if err := b.FileDelete(target); err != nil {
					return err
				}
			}
		}

		return FileCopy(b, target, path)
	})
}
