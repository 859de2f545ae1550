package node

import (
	"errors"
	"time"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("node: invalid config")

// FinderConfig 节点发现配置
type FinderConfig struct {
	// CycleInterval 两轮发现之间的间隔
	CycleInterval time.Duration

	// MemberTTL 成员集合条目的存活时间；过期的节点重新变为可连接
	MemberTTL time.Duration

	// SessionBuffer 已建立会话的交付缓冲大小
	SessionBuffer int
}

// DefaultFinderConfig 默认节点发现配置
func DefaultFinderConfig() FinderConfig {
	return FinderConfig{
		CycleInterval: 30 * time.Second,
		MemberTTL:     3 * time.Minute,
		SessionBuffer: 8,
	}
}

// Validate 校验配置
func (c FinderConfig) Validate() error {
	if c.CycleInterval <= 0 || c.MemberTTL <= 0 || c.SessionBuffer <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
