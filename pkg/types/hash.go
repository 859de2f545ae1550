package types

import (
	"bytes"
	"errors"

	"github.com/mr-tron/base58"
	"lukechampine.com/blake3"
)

// ============================================================================
//                              Hash - 内容哈希
// ============================================================================

// HashSize 哈希摘要长度（字节）
const HashSize = 32

var (
	// ErrInvalidHashLength 无效的哈希长度
	ErrInvalidHashLength = errors.New("types: invalid hash length")

	// ErrInvalidHashEncoding 无效的哈希编码
	ErrInvalidHashEncoding = errors.New("types: invalid hash encoding")
)

// Hash 内容哈希
//
// BLAKE3 摘要，用于标识发布文件的根哈希与内容块哈希。
// 文本形式为 Base58 编码。
type Hash [HashSize]byte

// NewHash 计算数据的内容哈希
func NewHash(data []byte) Hash {
	return Hash(blake3.Sum256(data))
}

// ParseHash 从 Base58 字符串解析哈希
func ParseHash(s string) (Hash, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Hash{}, ErrInvalidHashEncoding
	}
	if len(raw) != HashSize {
		return Hash{}, ErrInvalidHashLength
	}

	var h Hash
	copy(h[:], raw)
	return h, nil
}

// HashFromBytes 从原始字节创建哈希
func HashFromBytes(raw []byte) (Hash, error) {
	if len(raw) != HashSize {
		return Hash{}, ErrInvalidHashLength
	}

	var h Hash
	copy(h[:], raw)
	return h, nil
}

// Bytes 返回哈希的字节表示
func (h Hash) Bytes() []byte {
	return h[:]
}

// IsZero 检查是否为零值哈希
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Equal 比较两个哈希是否相等
func (h Hash) Equal(other Hash) bool {
	return bytes.Equal(h[:], other[:])
}

// String 返回哈希的 Base58 字符串表示
func (h Hash) String() string {
	return base58.Encode(h[:])
}
