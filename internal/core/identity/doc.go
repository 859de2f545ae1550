// Package identity 提供节点身份与签名能力的实现
//
// # 组件
//
//   - Signer: Ed25519 签名器，实现 interfaces.Signer
//   - CryptoRandomSource: crypto/rand 随机源，实现 interfaces.RandomSource
//
// # 使用示例
//
//	signer, err := identity.NewSigner()
//	cert, err := signer.Sign(nonce)
//	err = cert.Verify(nonce)
package identity
