//go:build darwin

package fileinfo

import (
	"io/fs"
	"syscall"
	"time"
)

func fillPlatformStat(st *Stat, _ string, fi fs.FileInfo) {
	sys, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	st.Uid = sys.Uid
	st.Gid = sys.Gid
	st.HasOwner = true
	st.Accessed = time.Unix(sys.Atimespec.Sec, sys.Atimespec.Nsec)
	st.Created = time.Unix(sys.Birthtimespec.Sec, sys.Birthtimespec.Nsec)
}
