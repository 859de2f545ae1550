// Package vset 提供带存活时间的易失集合
//
// VolatileSet 记录每个键的最近写入时间，超过 TTL 的键在下一次
// Refresh 时被清除。用于对「当前已连接或最近尝试过」的节点去重。
//
// 过期只发生在 Refresh 中：Insert / Contains 永远不会隐式清除条目，
// 单次操作保持 O(1)，读操作不产生意外的修改。
package vset

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// VolatileSet 带 TTL 的集合
//
// 对任意可比较键类型通用。时钟在构造时注入，
// 测试中可用 clock.NewMock() 确定性地推进时间。
type VolatileSet[T comparable] struct {
	mu      sync.Mutex
	entries map[T]time.Time
	ttl     time.Duration
	clock   clock.Clock
}

// New 创建易失集合
func New[T comparable](ttl time.Duration, clk clock.Clock) *VolatileSet[T] {
	return &VolatileSet[T]{
		entries: make(map[T]time.Time),
		ttl:     ttl,
		clock:   clk,
	}
}

// Insert 写入键，刷新其最近写入时间
func (s *VolatileSet[T]) Insert(key T) {
	s.mu.Lock()
	s.entries[key] = s.clock.Now()
	s.mu.Unlock()
}

// Contains 检查键是否在集合中
//
// 已过期但尚未 Refresh 的键仍视为存在；Refresh 是唯一的清除点。
func (s *VolatileSet[T]) Contains(key T) bool {
	s.mu.Lock()
	_, ok := s.entries[key]
	s.mu.Unlock()
	return ok
}

// Remove 移除键
func (s *VolatileSet[T]) Remove(key T) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Refresh 清除所有超过 TTL 的条目
func (s *VolatileSet[T]) Refresh() {
	now := s.clock.Now()

	s.mu.Lock()
	for key, seen := range s.entries {
		if now.Sub(seen) > s.ttl {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Len 返回当前条目数（含已过期未清除的条目）
func (s *VolatileSet[T]) Len() int {
	s.mu.Lock()
	n := len(s.entries)
	s.mu.Unlock()
	return n
}
