package config

import "errors"

// IdentityConfig 身份配置
//
// 节点身份是一对 ed25519 密钥；节点标识从公钥派生。
type IdentityConfig struct {
	// KeyFile 密钥种子文件路径
	// 为空时在内存中生成临时密钥，生产环境建议持久化
	KeyFile string `json:"key_file"`

	// AutoGenerate 密钥文件不存在时是否自动生成
	AutoGenerate bool `json:"auto_generate"`
}

// DefaultIdentityConfig 返回默认身份配置
func DefaultIdentityConfig() IdentityConfig {
	return IdentityConfig{
		KeyFile:      "",
		AutoGenerate: true,
	}
}

// Validate 验证身份配置
func (c IdentityConfig) Validate() error {
	if c.KeyFile == "" && !c.AutoGenerate {
		return errors.New("key_file required when auto_generate is disabled")
	}
	return nil
}
