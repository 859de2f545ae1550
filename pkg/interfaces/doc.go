// Package interfaces 定义 Amber 的公共能力接口
//
// 核心组件只持有这些抽象能力，从不依赖具体实现，
// 以便在测试中替换为内存实现（内存传输、注入时钟、固定随机源）。
//
// 接口文件组织（一个接口文件 = 一个实现目录）：
//   - transport.go  - 传输层（Accepter / Connector / Stream）
//   - signer.go     - 非对称签名（Signer / Certificate）
//   - random.go     - 随机源
//   - noderef.go    - 节点引用源
//
// 时钟能力直接使用 github.com/benbjohnson/clock.Clock，
// 测试中以 clock.NewMock() 注入。
package interfaces
