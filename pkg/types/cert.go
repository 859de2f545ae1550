package types

import (
	"crypto/ed25519"
	"errors"
)

// ============================================================================
//                              Certificate - 签名证书
// ============================================================================

var (
	// ErrInvalidCertificate 证书形状非法
	ErrInvalidCertificate = errors.New("types: invalid certificate")

	// ErrSignatureMismatch 签名验证失败
	ErrSignatureMismatch = errors.New("types: signature mismatch")
)

// Certificate 签名证书
//
// 携带签名方的公钥与对给定数据的签名，是握手签名消息的载荷。
// 验证始终针对本地保留的期望数据进行，而不是对端声称签过的内容。
type Certificate struct {
	// PublicKey 签名方的 Ed25519 公钥
	PublicKey []byte

	// Signature 对数据的签名
	Signature []byte
}

// Verify 验证证书对期望数据的签名
//
// expected 是验证方自己生成并保留的数据（握手中为本方发出的随机数）。
func (c *Certificate) Verify(expected []byte) error {
	if c == nil || len(c.PublicKey) != ed25519.PublicKeySize || len(c.Signature) != ed25519.SignatureSize {
		return ErrInvalidCertificate
	}
	if !ed25519.Verify(ed25519.PublicKey(c.PublicKey), expected, c.Signature) {
		return ErrSignatureMismatch
	}
	return nil
}

// NodeID 返回证书公钥派生的节点标识
func (c *Certificate) NodeID() NodeID {
	if c == nil {
		return ""
	}
	return NodeIDFromPublicKey(c.PublicKey)
}
