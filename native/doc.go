// Package native implements core.Backend on top of the host operating
// system.
//
// Streams talk to file descriptors directly through golang.org/x/sys/unix.
// Reads and writes are split into chunks of at most the configured chunk
// size, interrupted system calls are retried without advancing, and a read
// that returns zero bytes before the buffer is full reports
// errors.CodeEndOfStream with the bytes transferred so far.
//
// OpenWrite creates the file if absent and takes an exclusive, non-blocking
// flock(2) before truncating it, so a second cooperating writer fails
// immediately with errors.CodeFailure (classified retryable) instead of
// waiting or clobbering the file. Read streams take no lock. File systems
// that do not support flock are written without a lock.
//
// Metadata operations go through package os. FileMove falls back to
// core.MoveByCopy when a rename crosses devices.
//
// Backend-specific files:
//   - unix:     stream_unix.go (descriptors, flock, EINTR)
//   - linux:    times_linux.go (statx birth and access times)
//   - other:    stream_other.go, times_other.go (os.File, no locking)
package native
