package types

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// ============================================================================
//                              NodeID - 节点标识
// ============================================================================

// NodeID 节点唯一标识
//
// 由节点签名公钥派生（Base58 编码），可直接作为映射键使用。
type NodeID string

// NodeIDFromPublicKey 从签名公钥派生节点标识
func NodeIDFromPublicKey(pub []byte) NodeID {
	return NodeID(base58.Encode(NewHash(pub).Bytes()))
}

// Empty 检查节点标识是否为空
func (id NodeID) Empty() bool {
	return id == ""
}

// ShortString 返回截断的节点标识（用于日志）
func (id NodeID) ShortString() string {
	s := string(id)
	if len(s) <= 10 {
		return s
	}
	return s[:10]
}

// String 返回节点标识的字符串表示
func (id NodeID) String() string {
	return string(id)
}

// ============================================================================
//                              NodeRef - 节点引用
// ============================================================================

// NodeRef 节点引用
//
// 一个节点的身份及其候选网络地址，由外部地址源提供，获取后不可变。
// 连接时按 Addrs 的顺序逐个尝试，命中第一个可用地址即停止。
type NodeRef struct {
	// ID 节点标识
	ID NodeID

	// Addrs 候选网络地址（host:port 形式）
	Addrs []string
}

// NewNodeRef 创建节点引用
func NewNodeRef(id NodeID, addrs ...string) NodeRef {
	return NodeRef{ID: id, Addrs: addrs}
}

// Empty 检查节点引用是否为空
func (r NodeRef) Empty() bool {
	return r.ID.Empty() && len(r.Addrs) == 0
}

// String 返回节点引用的字符串表示
func (r NodeRef) String() string {
	return fmt.Sprintf("%s[%s]", r.ID.ShortString(), strings.Join(r.Addrs, ","))
}
