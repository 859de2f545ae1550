package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mr-tron/base58"
)

// ErrKeyFileMissing 密钥文件不存在且未启用自动生成
var ErrKeyFileMissing = errors.New("identity: key file missing")

// LoadOrCreateSigner 从密钥文件加载签名器
//
// 文件内容是 base58 编码的 32 字节种子。文件不存在且 autoGenerate
// 为真时生成新密钥并写入（路径为空则只在内存中生成）。
func LoadOrCreateSigner(path string, autoGenerate bool) (*Signer, error) {
	if path == "" {
		return NewSigner()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		seed, err := base58.Decode(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("identity: decode key file %s: %w", path, err)
		}
		return NewSignerFromSeed(seed)

	case os.IsNotExist(err):
		if !autoGenerate {
			return nil, fmt.Errorf("%w: %s", ErrKeyFileMissing, path)
		}
		return generateKeyFile(path)

	default:
		return nil, err
	}
}

func generateKeyFile(path string) (*Signer, error) {
	seed := make([]byte, 32)
	src := NewRandomSource()
	buf, err := src.GetBytes(len(seed))
	if err != nil {
		return nil, err
	}
	copy(seed, buf)

	signer, err := NewSignerFromSeed(seed)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(base58.Encode(seed)), 0o600); err != nil {
		return nil, err
	}
	return signer, nil
}
