// Package interfaces 定义 Amber 公共接口
//
// 本文件定义随机源接口。
package interfaces

// RandomSource 定义随机字节源接口
//
// 握手的挑战阶段用它生成 32 字节随机数。
// 注入接口而非直接读 crypto/rand，使握手在测试中可用固定随机数驱动。
type RandomSource interface {
	// GetBytes 返回 n 个随机字节
	GetBytes(n int) ([]byte, error)
}
