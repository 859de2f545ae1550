package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 20, cfg.Session.QueueCapacity)
	assert.Equal(t, 3, cfg.Session.WorkerCount)
	assert.Equal(t, time.Second, cfg.Session.AcceptInterval.Duration())
	assert.Equal(t, 30*time.Second, cfg.Node.CycleInterval.Duration())
}

func TestConfig_FromJSON(t *testing.T) {
	data := []byte(`{
		"session": {"queue_capacity": 5, "accept_interval": "250ms"},
		"node": {"member_ttl": "10m", "known_peers": [{"id": "abc", "addrs": ["10.0.0.1:4860"]}]}
	}`)

	cfg, err := FromJSON(data)
	require.NoError(t, err)

	t.Run("显式字段覆盖默认值", func(t *testing.T) {
		assert.Equal(t, 5, cfg.Session.QueueCapacity)
		assert.Equal(t, 250*time.Millisecond, cfg.Session.AcceptInterval.Duration())
		assert.Equal(t, 10*time.Minute, cfg.Node.MemberTTL.Duration())
	})

	t.Run("未出现的字段保留默认值", func(t *testing.T) {
		assert.Equal(t, 3, cfg.Session.WorkerCount)
		assert.Equal(t, "0.0.0.0:4860", cfg.Transport.ListenAddr)
	})

	t.Run("已知节点列表", func(t *testing.T) {
		require.Len(t, cfg.Node.KnownPeers, 1)
		assert.Equal(t, "abc", cfg.Node.KnownPeers[0].ID)
	})
}

func TestConfig_FromJSONInvalid(t *testing.T) {
	_, err := FromJSON([]byte(`{"session": {"queue_capacity": -1}}`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`{"session": {"accept_interval": "not-a-duration"}}`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestConfig_SaveLoadRoundtrip(t *testing.T) {
	cfg := NewConfig()
	cfg.Session.QueueCapacity = 7
	cfg.Storage.Path = "/tmp/amber-test.db"

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, cfg.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDuration_NumberForm(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"session": {"handshake_timeout": 5000000000}}`))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Session.HandshakeTimeout.Duration())
}
