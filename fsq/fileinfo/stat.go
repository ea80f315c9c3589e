package fileinfo

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"strconv"
	"sync"
	"time"
)

// Stat is the lstat data behind the metadata attributes.
type Stat struct {
	Size     uint64
	Mode     fs.FileMode
	Uid      uint32
	Gid      uint32
	HasOwner bool
	Accessed time.Time
	Modified time.Time
	Created  time.Time // zero when the filesystem does not record birth time
}

// Lstat reads metadata for path without following a final symlink.
func Lstat(path string) (*Stat, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	st := &Stat{
		Size:     uint64(max(fi.Size(), 0)),
		Mode:     fi.Mode(),
		Modified: fi.ModTime(),
	}
	fillPlatformStat(st, path, fi)
	return st, nil
}

var (
	userNames  sync.Map // uid -> name
	groupNames sync.Map // gid -> name
)

// UserName resolves uid, caching the answer. Unknown ids render as "".
func UserName(uid uint32) string {
	if v, ok := userNames.Load(uid); ok {
		return v.(string)
	}
	name := ""
	if u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil {
		name = u.Username
	}
	userNames.Store(uid, name)
	return name
}

// GroupName resolves gid, caching the answer. Unknown ids render as "".
func GroupName(gid uint32) string {
	if v, ok := groupNames.Load(gid); ok {
		return v.(string)
	}
	name := ""
	if g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10)); err == nil {
		name = g.Name
	}
	groupNames.Store(gid, name)
	return name
}
