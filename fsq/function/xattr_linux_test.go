//go:build linux

package function

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/fsquery/fsq/fileinfo"
	"github.com/ZanzyTHEbar/fsquery/fsq/variant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestXattrRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagged")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	if err := unix.Setxattr(path, "user.fsq", []byte("blue"), 0); err != nil {
		t.Skipf("filesystem rejects user xattrs: %v", err)
	}
	entry := fileinfo.NewEntry(path, nil)

	e := NewEvaluator(WithPlatform(Platform{Identity: true, Xattr: true, FileCaps: true}))
	get := func(fn Function, arg string, entry *fileinfo.Entry) variant.Value {
		v, err := e.Evaluate(fn, arg, nil, entry, nil)
		require.NoError(t, err)
		return v
	}

	assert.True(t, get(HasXattr, "user.fsq", entry).Bool())
	assert.Equal(t, "blue", get(Xattr, "user.fsq", entry).String())

	missing := get(HasXattr, "user.other", entry)
	assert.False(t, missing.IsEmpty())
	assert.False(t, missing.Bool())
	assert.True(t, get(Xattr, "user.other", entry).IsEmpty())

	assert.False(t, get(HasCapabilities, "", entry).Bool())
	assert.False(t, get(HasCapability, "net_raw", entry).Bool())
	assert.True(t, get(HasXattr, "user.fsq", nil).IsEmpty())

	names, err := fileinfo.ListXattrs(path)
	require.NoError(t, err)
	assert.Contains(t, names, "user.fsq")
}
