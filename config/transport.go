package config

import "errors"

// TransportConfig 传输层配置
type TransportConfig struct {
	// ListenAddr TCP 监听地址
	ListenAddr string `json:"listen_addr"`

	// KeepAlive TCP keep-alive 间隔（0 禁用）
	KeepAlive Duration `json:"keep_alive"`

	// NoDelay 禁用 Nagle 算法
	NoDelay bool `json:"no_delay"`
}

// DefaultTransportConfig 返回默认传输配置
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		ListenAddr: "0.0.0.0:4860",
		KeepAlive:  Duration(0),
		NoDelay:    true,
	}
}

// Validate 验证传输配置
func (c TransportConfig) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr required")
	}
	return nil
}
