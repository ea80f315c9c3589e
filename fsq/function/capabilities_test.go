package function

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capPayload(magic uint32, words ...uint32) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, magic)
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	return buf
}

func TestParseCapabilities(t *testing.T) {
	netBind := uint32(1 << 10)
	netRaw := uint32(1 << 13)

	t.Run("v2 effective", func(t *testing.T) {
		caps, err := ParseCapabilities(capPayload(capRevision2|capFlagEffective, netBind|netRaw, 0, 0, 0))
		require.NoError(t, err)
		assert.True(t, caps.Effective)
		assert.Equal(t, []string{"cap_net_bind_service", "cap_net_raw"}, caps.Names())
		assert.Equal(t, "cap_net_bind_service,cap_net_raw=ep", caps.String())
		assert.True(t, caps.Has("net_raw"))
		assert.True(t, caps.Has("CAP_NET_RAW"))
		assert.False(t, caps.Has("sys_admin"))
	})

	t.Run("v3 upper word and root id", func(t *testing.T) {
		// bit 38 (perfmon) lives in the second permitted word
		caps, err := ParseCapabilities(capPayload(capRevision3, 0, 1<<0, 1<<6, 0, 1000))
		require.NoError(t, err)
		assert.False(t, caps.Effective)
		assert.Equal(t, uint32(1000), caps.RootID)
		assert.Equal(t, []string{"cap_chown", "cap_perfmon"}, caps.Names())
		assert.Equal(t, "cap_chown,cap_perfmon=ip", caps.String())
	})

	t.Run("v1", func(t *testing.T) {
		caps, err := ParseCapabilities(capPayload(capRevision1, 1<<21, 0))
		require.NoError(t, err)
		assert.True(t, caps.Has("sys_admin"))
	})

	t.Run("unknown bit", func(t *testing.T) {
		caps, err := ParseCapabilities(capPayload(capRevision2, 0, 0, 1<<31, 0))
		require.NoError(t, err)
		assert.Equal(t, []string{"cap_63"}, caps.Names())
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range [][]byte{
			nil,
			{0x01, 0x02},
			capPayload(capRevision2, 1),
			capPayload(capRevision3, 0, 0, 0, 0),
			capPayload(0x09000000, 0, 0, 0, 0),
		} {
			_, err := ParseCapabilities(raw)
			assert.Error(t, err)
		}
	})

	assert.Equal(t, "", FileCaps{}.String())
}
