package fileinfo

import "errors"

var (
	// ErrNoXattr means the attribute is not set on the file.
	ErrNoXattr = errors.New("extended attribute not set")
	// ErrXattrUnsupported means the platform has no extended attributes.
	ErrXattrUnsupported = errors.New("extended attributes are not supported on this platform")
)

// CapabilityXattr holds Linux file capabilities.
const CapabilityXattr = "security.capability"

// HasXattrs reports whether path carries any extended attribute.
func HasXattrs(path string) (bool, error) {
	names, err := ListXattrs(path)
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}
