// Package types 定义 Amber 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 amber 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
// 会话类型:
//   - version.go  - SessionVersion 协议版本位集
//   - enums.go    - SessionType, SessionHandshakeType, V1RequestType, V1ResultType
//
// 内容寻址类型:
//   - hash.go     - Hash 内容哈希（BLAKE3 摘要，Base58 文本形式）
//   - merkle.go   - MerkleLayer, PublishedFile
//
// 节点类型:
//   - noderef.go  - NodeRef 节点引用（标识 + 候选地址）
package types
