// Package interfaces 定义 Amber 公共接口
//
// 本文件定义签名能力接口。
package interfaces

import "github.com/ambernet/go-amber/pkg/types"

// Signer 定义非对称签名接口
//
// 握手的签名阶段用它对对端挑战随机数签名，
// 产出的证书随签名消息发给对端。
type Signer interface {
	// Sign 对数据签名，返回携带公钥与签名的证书
	Sign(data []byte) (*types.Certificate, error)

	// NodeID 返回本节点标识（从签名公钥派生）
	NodeID() types.NodeID
}
