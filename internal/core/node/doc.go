// Package node 实现节点发现
//
// NodeFinder 是发现控制循环：周期性地从节点引用源拉取候选节点，
// 借助会话连接端对尚未持有的候选建立 NodeFinder 用途的出站会话，
// 并用带 TTL 的易失集合去重，避免重复连接已持有或刚尝试过的节点。
//
// 每轮循环：
//  1. 刷新成员集合，清除超过 TTL 的条目（这些节点重新变为可连接）
//  2. 从节点引用源获取当前候选列表
//  3. 跳过已在成员集合中的候选；其余按地址顺序尝试连接，
//     第一个成功的地址胜出
//  4. 成功后把节点登记进成员集合，会话交给消费方
//  5. 单个候选的全部地址都失败只跳过该候选，下轮自然重试
//
// 取消只在候选之间的边界生效，绝不在握手中途遗留半认证的流。
package node
