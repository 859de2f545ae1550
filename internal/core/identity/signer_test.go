package identity

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambernet/go-amber/pkg/types"
)

func TestSigner_SignVerify(t *testing.T) {
	signer, err := NewSigner()
	require.NoError(t, err)

	data := []byte("challenge nonce")
	cert, err := signer.Sign(data)
	require.NoError(t, err)

	t.Run("对签名数据验证通过", func(t *testing.T) {
		assert.NoError(t, cert.Verify(data))
	})

	t.Run("对其它数据验证失败", func(t *testing.T) {
		assert.ErrorIs(t, cert.Verify([]byte("other data")), types.ErrSignatureMismatch)
	})

	t.Run("证书公钥派生的 NodeID 与签名器一致", func(t *testing.T) {
		assert.Equal(t, signer.NodeID(), cert.NodeID())
	})
}

func TestSigner_Replay(t *testing.T) {
	signer, err := NewSigner()
	require.NoError(t, err)

	// 截获旧挑战的签名，重放到新挑战上必须失败
	oldNonce := []byte("nonce-from-previous-handshake-00")
	captured, err := signer.Sign(oldNonce)
	require.NoError(t, err)

	freshNonce := []byte("nonce-from-current-handshake-001")
	assert.ErrorIs(t, captured.Verify(freshNonce), types.ErrSignatureMismatch)
}

func TestNewSignerFromSeed(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}

	a, err := NewSignerFromSeed(seed)
	require.NoError(t, err)
	b, err := NewSignerFromSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, a.NodeID(), b.NodeID(), "同一种子应得到同一身份")

	_, err = NewSignerFromSeed([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidSeedSize)
}

func TestCertificate_InvalidShape(t *testing.T) {
	cert := &types.Certificate{PublicKey: []byte("bad"), Signature: []byte("bad")}
	assert.ErrorIs(t, cert.Verify([]byte("x")), types.ErrInvalidCertificate)
}

func TestCryptoRandomSource(t *testing.T) {
	src := NewRandomSource()

	a, err := src.GetBytes(32)
	require.NoError(t, err)
	require.Len(t, a, 32)

	b, err := src.GetBytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
