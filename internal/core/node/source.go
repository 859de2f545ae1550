package node

import (
	"context"

	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
	"github.com/ambernet/go-amber/pkg/types"
)

// StaticSource 固定候选列表的节点引用源
//
// 服务于配置中的已知节点场景；真实部署可替换为
// 任何实现 NodeRefSource 的动态来源。
type StaticSource struct {
	refs []types.NodeRef
}

// 确保实现接口
var _ pkgif.NodeRefSource = (*StaticSource)(nil)

// NewStaticSource 创建固定候选列表的引用源
func NewStaticSource(refs ...types.NodeRef) *StaticSource {
	return &StaticSource{refs: refs}
}

// GetNodeRefs 返回候选节点列表
func (s *StaticSource) GetNodeRefs(_ context.Context) ([]types.NodeRef, error) {
	return append([]types.NodeRef(nil), s.refs...), nil
}
