//go:build linux

package native

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes returns the birth and access times of path using statx(2).
// File systems that do not record birth time report the modification time.
func fileTimes(path string, info fs.FileInfo) (created, accessed time.Time) {
	created, accessed = info.ModTime(), info.ModTime()

	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_ATIME|unix.STATX_BTIME, &stx); err != nil {
		return created, accessed
	}
	if stx.Mask&unix.STATX_ATIME != 0 {
		accessed = time.Unix(stx.Atime.Sec, int64(stx.Atime.Nsec))
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	return created, accessed
}
