package config

import (
	"errors"
	"time"
)

// SessionConfig 会话层配置
type SessionConfig struct {
	// QueueCapacity 每种会话用途的接入队列容量
	// 队列容量是唯一的准入控制机制：满员的新握手被拒绝
	QueueCapacity int `json:"queue_capacity"`

	// WorkerCount 接入端工作协程数
	WorkerCount int `json:"worker_count"`

	// AcceptInterval 每次接受前的间隔
	AcceptInterval Duration `json:"accept_interval"`

	// HandshakeTimeout 出站拨号加握手的整体超时
	HandshakeTimeout Duration `json:"handshake_timeout"`
}

// DefaultSessionConfig 返回默认会话配置
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		QueueCapacity:    20,
		WorkerCount:      3,
		AcceptInterval:   Duration(time.Second),
		HandshakeTimeout: Duration(10 * time.Second),
	}
}

// Validate 验证会话配置
func (c SessionConfig) Validate() error {
	if c.QueueCapacity <= 0 {
		return errors.New("queue_capacity must be positive")
	}
	if c.WorkerCount <= 0 {
		return errors.New("worker_count must be positive")
	}
	if c.HandshakeTimeout.Duration() <= 0 {
		return errors.New("handshake_timeout must be positive")
	}
	return nil
}
