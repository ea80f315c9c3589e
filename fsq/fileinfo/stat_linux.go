//go:build linux

package fileinfo

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

func fillPlatformStat(st *Stat, path string, fi fs.FileInfo) {
	if sys, ok := fi.Sys().(*syscall.Stat_t); ok {
		st.Uid = sys.Uid
		st.Gid = sys.Gid
		st.HasOwner = true
		st.Accessed = time.Unix(int64(sys.Atim.Sec), int64(sys.Atim.Nsec))
	}

	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err == nil && stx.Mask&unix.STATX_BTIME != 0 {
		st.Created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
}
