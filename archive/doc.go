// Package archive provides buffered, typed serialization over a core.Stream.
//
// A Reader or Writer wraps one stream and moves fixed-size little-endian
// values, length-prefixed strings and raw byte blocks through it. Errors
// are sticky: after the first failure every later call is a no-op and Err
// reports the failure, so a sequence of reads or writes can be checked once
// at the end:
//
//	w := archive.NewWriter(s)
//	w.WriteUint32(magic)
//	w.WriteString(name)
//	w.WriteBytes(payload)
//	if err := w.Flush(); err != nil {
//	    return err
//	}
//
// Asset formats built on top of an archive are out of scope for this
// package.
package archive
