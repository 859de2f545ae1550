// Package session 实现对等会话层
//
// 会话层把一条匿名的双向字节流变成经过签名验证、带用途标记的 Session。
// 双方在流上执行同一个握手状态机：
//
//	Start → HelloExchanged → ChallengeExchanged → SignatureExchanged
//	      → RequestOrResultExchanged → Established | Rejected | Failed
//
//  1. Hello: 双方交换版本位集，协商结果为按位与；交集为空则握手失败
//  2. Challenge: 双方各生成 32 字节随机数并交换
//  3. Signature: 各自对「对端发来的随机数」签名并交换证书，
//     用「本方保留的随机数」验证对端签名，失败即终止
//  4. Request: 发起方声明期望的会话用途
//  5. Result: 响应方按队列余量做准入判定，回复 Accept 或 Reject
//
// # 组件
//
//   - SessionAccepter: 响应方，工作池持续接受入站连接并执行握手，
//     按会话用途路由到容量固定的队列（先预留槽位再回复 Accept）
//   - SessionConnector: 发起方，拨号并执行握手，带整体超时
//   - Session: 握手产物，独占持有底层流
//
// # 准入控制
//
// 每种会话用途一个固定容量队列。响应方先预留槽位、后回复 Accept，
// 保证产出的会话一定有去处；队列满时回复 Reject——这是正常的
// 准入控制结果，不是错误。
package session
