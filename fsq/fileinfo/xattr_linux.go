//go:build linux

package fileinfo

import (
	"errors"
	"strings"

	"golang.org/x/sys/unix"
)

// GetXattr returns the value of the extended attribute name on path.
func GetXattr(path, name string) ([]byte, error) {
	for {
		size, err := unix.Getxattr(path, name, nil)
		if err != nil {
			return nil, xattrErr(err)
		}
		buf := make([]byte, size)
		n, err := unix.Getxattr(path, name, buf)
		if errors.Is(err, unix.ERANGE) {
			continue // grew between calls
		}
		if err != nil {
			return nil, xattrErr(err)
		}
		return buf[:n], nil
	}
}

// ListXattrs returns the attribute names set on path.
func ListXattrs(path string) ([]string, error) {
	size, err := unix.Listxattr(path, nil)
	if err != nil {
		return nil, xattrErr(err)
	}
	if size == 0 {
		return nil, nil
	}
	buf := make([]byte, size)
	n, err := unix.Listxattr(path, buf)
	if err != nil {
		return nil, xattrErr(err)
	}
	return splitNames(buf[:n]), nil
}

func xattrErr(err error) error {
	switch {
	case errors.Is(err, unix.ENODATA):
		return ErrNoXattr
	case errors.Is(err, unix.ENOTSUP):
		return ErrXattrUnsupported
	}
	return err
}

func splitNames(buf []byte) []string {
	var names []string
	for _, name := range strings.Split(string(buf), "\x00") {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
