package types

import (
	"errors"
	"fmt"
	"time"
)

// ============================================================================
//                              MerkleLayer - 哈希树条目
// ============================================================================

// ErrInvalidMerkleLayer 无效的哈希树条目
var ErrInvalidMerkleLayer = errors.New("types: invalid merkle layer")

// MerkleLayer 哈希树条目
//
// 标识一个内容块在以 RootHash 为根的二叉哈希树中的位置。
// (RootHash, BlockHash, Depth, Index) 四元组唯一；
// Depth 为距根节点的层数（0 = 根），Index 为该层内从 0 开始的位置。
type MerkleLayer struct {
	// RootHash 哈希树根哈希
	RootHash Hash

	// BlockHash 内容块哈希
	BlockHash Hash

	// Depth 距根节点的层数（0 = 根）
	Depth uint32

	// Index 该层内的位置（从 0 开始）
	Index uint32
}

// Validate 校验条目的形状约束
//
// 根层（Depth = 0）的条目 Index 必须为 0。
func (l MerkleLayer) Validate() error {
	if l.RootHash.IsZero() || l.BlockHash.IsZero() {
		return ErrInvalidMerkleLayer
	}
	if l.Depth == 0 && l.Index != 0 {
		return fmt.Errorf("%w: root layer index must be 0, got %d", ErrInvalidMerkleLayer, l.Index)
	}
	return nil
}

// String 返回条目的字符串表示
func (l MerkleLayer) String() string {
	return fmt.Sprintf("%s/%d/%d/%s", l.RootHash, l.Depth, l.Index, l.BlockHash)
}

// ============================================================================
//                              PublishedFile - 发布文件记录
// ============================================================================

// PublishedFile 发布文件记录
//
// 核心不负责持久化；该形状与外部存储仓库共享，
// 保证块索引在各仓库间的一致性。
type PublishedFile struct {
	// RootHash 文件哈希树的根哈希
	RootHash Hash

	// FileName 文件名
	FileName string

	// BlockSize 分块大小（字节）
	BlockSize int64

	// Property 附加属性（可为空）
	Property string

	// CreatedTime 创建时间
	CreatedTime time.Time

	// UpdatedTime 最近更新时间
	UpdatedTime time.Time
}
