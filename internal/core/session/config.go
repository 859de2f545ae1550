package session

import (
	"time"

	"github.com/ambernet/go-amber/pkg/types"
)

// AccepterConfig 接入端配置
type AccepterConfig struct {
	// QueueCapacity 每种会话用途的队列容量
	QueueCapacity int

	// WorkerCount 接受工作协程数
	WorkerCount int

	// AcceptInterval 每次接受前的间隔，限制资源占用
	AcceptInterval time.Duration

	// Versions 本节点提供的协议版本位集
	Versions types.SessionVersion
}

// DefaultAccepterConfig 默认接入端配置
func DefaultAccepterConfig() AccepterConfig {
	return AccepterConfig{
		QueueCapacity:  20,
		WorkerCount:    3,
		AcceptInterval: time.Second,
		Versions:       types.SessionVersionV1,
	}
}

// Validate 校验配置
func (c AccepterConfig) Validate() error {
	if c.QueueCapacity <= 0 || c.WorkerCount <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ConnectorConfig 连接端配置
type ConnectorConfig struct {
	// HandshakeTimeout 拨号加握手的整体超时
	//
	// 无响应的对端不能无限期阻塞发现循环。
	HandshakeTimeout time.Duration

	// Versions 本节点提供的协议版本位集
	Versions types.SessionVersion
}

// DefaultConnectorConfig 默认连接端配置
func DefaultConnectorConfig() ConnectorConfig {
	return ConnectorConfig{
		HandshakeTimeout: 10 * time.Second,
		Versions:         types.SessionVersionV1,
	}
}
