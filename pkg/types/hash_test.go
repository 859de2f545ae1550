package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_RoundTrip(t *testing.T) {
	h := NewHash([]byte("amber test data"))
	require.False(t, h.IsZero())

	parsed, err := ParseHash(h.String())
	require.NoError(t, err)
	assert.True(t, h.Equal(parsed))
}

func TestHash_Deterministic(t *testing.T) {
	a := NewHash([]byte("same input"))
	b := NewHash([]byte("same input"))
	c := NewHash([]byte("other input"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestParseHash_Invalid(t *testing.T) {
	t.Run("非法编码", func(t *testing.T) {
		_, err := ParseHash("0OIl not base58")
		assert.ErrorIs(t, err, ErrInvalidHashEncoding)
	})

	t.Run("长度错误", func(t *testing.T) {
		_, err := ParseHash("3mJr7A")
		assert.ErrorIs(t, err, ErrInvalidHashLength)
	})
}

func TestHashFromBytes(t *testing.T) {
	raw := NewHash([]byte("x")).Bytes()
	h, err := HashFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, h.Bytes())

	_, err = HashFromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidHashLength)
}

func TestMerkleLayer_Validate(t *testing.T) {
	root := NewHash([]byte("root"))
	block := NewHash([]byte("block"))

	t.Run("合法条目", func(t *testing.T) {
		layer := MerkleLayer{RootHash: root, BlockHash: block, Depth: 2, Index: 3}
		assert.NoError(t, layer.Validate())
	})

	t.Run("根层 index 必须为 0", func(t *testing.T) {
		layer := MerkleLayer{RootHash: root, BlockHash: block, Depth: 0, Index: 1}
		assert.ErrorIs(t, layer.Validate(), ErrInvalidMerkleLayer)
	})

	t.Run("零值哈希非法", func(t *testing.T) {
		layer := MerkleLayer{Depth: 1, Index: 0}
		assert.ErrorIs(t, layer.Validate(), ErrInvalidMerkleLayer)
	})
}
