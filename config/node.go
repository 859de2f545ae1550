package config

import (
	"errors"
	"time"
)

// NodeConfig 节点发现配置
type NodeConfig struct {
	// CycleInterval 两轮发现之间的间隔
	CycleInterval Duration `json:"cycle_interval"`

	// MemberTTL 成员集合条目的存活时间
	MemberTTL Duration `json:"member_ttl"`

	// SessionBuffer 已建立会话的交付缓冲大小
	SessionBuffer int `json:"session_buffer"`

	// KnownPeers 启动时的候选节点列表
	KnownPeers []KnownPeer `json:"known_peers,omitempty"`
}

// KnownPeer 已知候选节点
type KnownPeer struct {
	// ID 节点标识（base58）
	ID string `json:"id"`

	// Addrs 候选地址列表，按优先级排列
	Addrs []string `json:"addrs"`
}

// DefaultNodeConfig 返回默认节点发现配置
func DefaultNodeConfig() NodeConfig {
	return NodeConfig{
		CycleInterval: Duration(30 * time.Second),
		MemberTTL:     Duration(3 * time.Minute),
		SessionBuffer: 8,
	}
}

// Validate 验证节点发现配置
func (c NodeConfig) Validate() error {
	if c.CycleInterval.Duration() <= 0 {
		return errors.New("cycle_interval must be positive")
	}
	if c.MemberTTL.Duration() <= 0 {
		return errors.New("member_ttl must be positive")
	}
	if c.SessionBuffer <= 0 {
		return errors.New("session_buffer must be positive")
	}
	for _, p := range c.KnownPeers {
		if p.ID == "" || len(p.Addrs) == 0 {
			return errors.New("known_peers entries need id and addrs")
		}
	}
	return nil
}
