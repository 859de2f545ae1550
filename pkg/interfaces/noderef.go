// Package interfaces 定义 Amber 公共接口
//
// 本文件定义节点引用源接口。
package interfaces

import (
	"context"

	"github.com/ambernet/go-amber/pkg/types"
)

// NodeRefSource 定义节点引用源接口
//
// 发现循环每轮从它获取当前的候选节点列表。
// 实现可以是静态引导列表、本地存储或任何外部地址源。
type NodeRefSource interface {
	// GetNodeRefs 返回当前已知的节点引用列表
	GetNodeRefs(ctx context.Context) ([]types.NodeRef, error)
}
