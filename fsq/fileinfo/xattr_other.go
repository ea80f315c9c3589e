//go:build !linux && !darwin

package fileinfo

func GetXattr(path, name string) ([]byte, error) { return nil, ErrXattrUnsupported }

func ListXattrs(path string) ([]string, error) { return nil, ErrXattrUnsupported }
