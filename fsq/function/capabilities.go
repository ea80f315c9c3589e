package function

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// security.capability payload layout (linux/capability.h, vfs_cap_data).
const (
	capRevisionMask  = 0xFF000000
	capRevision1     = 0x01000000
	capRevision2     = 0x02000000
	capRevision3     = 0x03000000
	capFlagEffective = 0x000001

	capSizeV1 = 4 + 1*8
	capSizeV2 = 4 + 2*8
	capSizeV3 = capSizeV2 + 4
)

var capNames = []string{
	"chown", "dac_override", "dac_read_search", "fowner", "fsetid", "kill",
	"setgid", "setuid", "setpcap", "linux_immutable", "net_bind_service",
	"net_broadcast", "net_admin", "net_raw", "ipc_lock", "ipc_owner",
	"sys_module", "sys_rawio", "sys_chroot", "sys_ptrace", "sys_pacct",
	"sys_admin", "sys_boot", "sys_nice", "sys_resource", "sys_time",
	"sys_tty_config", "mknod", "lease", "audit_write", "audit_control",
	"setfcap", "mac_override", "mac_admin", "syslog", "wake_alarm",
	"block_suspend", "audit_read", "perfmon", "bpf", "checkpoint_restore",
}

// FileCaps is a decoded security.capability attribute.
type FileCaps struct {
	Permitted   uint64
	Inheritable uint64
	Effective   bool
	RootID      uint32 // v3 only
}

// ParseCapabilities decodes a raw security.capability value.
func ParseCapabilities(raw []byte) (FileCaps, error) {
	if len(raw) < 4 {
		return FileCaps{}, fmt.Errorf("capability payload too short: %d bytes", len(raw))
	}
	magic := binary.LittleEndian.Uint32(raw)
	caps := FileCaps{Effective: magic&capFlagEffective != 0}

	words := 0
	switch magic & capRevisionMask {
	case capRevision1:
		if len(raw) < capSizeV1 {
			return FileCaps{}, fmt.Errorf("capability v1 payload too short: %d bytes", len(raw))
		}
		words = 1
	case capRevision2:
		if len(raw) < capSizeV2 {
			return FileCaps{}, fmt.Errorf("capability v2 payload too short: %d bytes", len(raw))
		}
		words = 2
	case capRevision3:
		if len(raw) < capSizeV3 {
			return FileCaps{}, fmt.Errorf("capability v3 payload too short: %d bytes", len(raw))
		}
		words = 2
		caps.RootID = binary.LittleEndian.Uint32(raw[capSizeV2:])
	default:
		return FileCaps{}, fmt.Errorf("unknown capability revision %#x", magic&capRevisionMask)
	}

	for i := 0; i < words; i++ {
		off := 4 + i*8
		caps.Permitted |= uint64(binary.LittleEndian.Uint32(raw[off:])) << (32 * i)
		caps.Inheritable |= uint64(binary.LittleEndian.Uint32(raw[off+4:])) << (32 * i)
	}
	return caps, nil
}

// Names lists every capability in the permitted or inheritable set as
// cap_* names, lowest bit first.
func (c FileCaps) Names() []string {
	var names []string
	all := c.Permitted | c.Inheritable
	for bit := 0; bit < 64; bit++ {
		if all&(1<<bit) != 0 {
			names = append(names, capName(bit))
		}
	}
	return names
}

// Has reports whether the named capability is set. Both "cap_net_raw" and
// "net_raw" are accepted, in any case.
func (c FileCaps) Has(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "cap_") {
		name = "cap_" + name
	}
	for _, n := range c.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// String renders the set the way getcap does, e.g. "cap_net_raw=ep".
func (c FileCaps) String() string {
	names := c.Names()
	if len(names) == 0 {
		return ""
	}
	flags := ""
	if c.Effective {
		flags += "e"
	}
	if c.Inheritable != 0 {
		flags += "i"
	}
	if c.Permitted != 0 {
		flags += "p"
	}
	return strings.Join(names, ",") + "=" + flags
}

func capName(bit int) string {
	if bit < len(capNames) {
		return "cap_" + capNames[bit]
	}
	return fmt.Sprintf("cap_%d", bit)
}
