package types

import "strings"

// ============================================================================
//                              SessionVersion - 会话协议版本
// ============================================================================

// SessionVersion 会话协议版本位集
//
// 每一位代表一个支持的协议版本。握手时双方交换各自的位集，
// 协商结果为两者的按位与；结果为空表示没有共同版本。
type SessionVersion uint32

const (
	// SessionVersionNone 空版本集
	SessionVersionNone SessionVersion = 0

	// SessionVersionV1 协议版本 1
	SessionVersionV1 SessionVersion = 1 << 0
)

// Contains 检查版本集是否包含指定版本
func (v SessionVersion) Contains(other SessionVersion) bool {
	return v&other == other && other != SessionVersionNone
}

// Intersect 返回两个版本集的交集（按位与）
func (v SessionVersion) Intersect(other SessionVersion) SessionVersion {
	return v & other
}

// Union 返回两个版本集的并集（按位或）
func (v SessionVersion) Union(other SessionVersion) SessionVersion {
	return v | other
}

// IsEmpty 检查版本集是否为空
func (v SessionVersion) IsEmpty() bool {
	return v == SessionVersionNone
}

// Bits 返回版本集的原始位表示
func (v SessionVersion) Bits() uint32 {
	return uint32(v)
}

// SessionVersionFromBits 从原始位创建版本集
func SessionVersionFromBits(bits uint32) SessionVersion {
	return SessionVersion(bits)
}

// String 返回版本集的字符串表示
func (v SessionVersion) String() string {
	if v.IsEmpty() {
		return "none"
	}

	var parts []string
	if v.Contains(SessionVersionV1) {
		parts = append(parts, "v1")
	}
	if rest := v &^ SessionVersionV1; rest != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}
