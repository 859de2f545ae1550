package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateSigner(t *testing.T) {
	t.Run("空路径生成临时身份", func(t *testing.T) {
		signer, err := LoadOrCreateSigner("", false)
		require.NoError(t, err)
		assert.False(t, signer.NodeID().Empty())
	})

	t.Run("自动生成后重新加载得到同一身份", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keys", "node.key")

		first, err := LoadOrCreateSigner(path, true)
		require.NoError(t, err)

		second, err := LoadOrCreateSigner(path, true)
		require.NoError(t, err)
		assert.Equal(t, first.NodeID(), second.NodeID())
	})

	t.Run("文件缺失且未启用自动生成", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent.key")
		_, err := LoadOrCreateSigner(path, false)
		assert.ErrorIs(t, err, ErrKeyFileMissing)
	})

	t.Run("损坏的密钥文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.key")
		require.NoError(t, os.WriteFile(path, []byte("!!! not base58 0OIl"), 0o600))
		_, err := LoadOrCreateSigner(path, true)
		assert.Error(t, err)
	})
}
