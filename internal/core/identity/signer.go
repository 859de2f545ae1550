package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"

	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
	"github.com/ambernet/go-amber/pkg/types"
)

// 错误定义
var (
	// ErrInvalidSeedSize 无效的种子长度
	ErrInvalidSeedSize = errors.New("identity: invalid seed size")
)

// ============================================================================
//                              Signer - Ed25519 签名器
// ============================================================================

// Signer Ed25519 签名器
type Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	id   types.NodeID
}

// 确保实现接口
var _ pkgif.Signer = (*Signer)(nil)

// NewSigner 生成新的随机密钥签名器
func NewSigner() (*Signer, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return newSigner(priv, pub), nil
}

// NewSignerFromSeed 从 32 字节种子创建签名器
//
// 同一种子总是得到同一身份，用于从持久化的密钥材料恢复。
func NewSignerFromSeed(seed []byte) (*Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, ErrInvalidSeedSize
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return newSigner(priv, priv.Public().(ed25519.PublicKey)), nil
}

func newSigner(priv ed25519.PrivateKey, pub ed25519.PublicKey) *Signer {
	return &Signer{
		priv: priv,
		pub:  pub,
		id:   types.NodeIDFromPublicKey(pub),
	}
}

// Sign 对数据签名，返回携带公钥与签名的证书
func (s *Signer) Sign(data []byte) (*types.Certificate, error) {
	sig := ed25519.Sign(s.priv, data)
	return &types.Certificate{
		PublicKey: append([]byte(nil), s.pub...),
		Signature: sig,
	}, nil
}

// NodeID 返回本节点标识
func (s *Signer) NodeID() types.NodeID {
	return s.id
}

// ============================================================================
//                              CryptoRandomSource - 随机源
// ============================================================================

// CryptoRandomSource crypto/rand 随机源
type CryptoRandomSource struct{}

// 确保实现接口
var _ pkgif.RandomSource = (*CryptoRandomSource)(nil)

// NewRandomSource 创建 crypto/rand 随机源
func NewRandomSource() *CryptoRandomSource {
	return &CryptoRandomSource{}
}

// GetBytes 返回 n 个随机字节
func (*CryptoRandomSource) GetBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
