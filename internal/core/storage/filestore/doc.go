// Package filestore 实现发布文件与哈希树条目的持久化仓库
//
// 两类记录：
//   - 发布文件：以根哈希为键的文件元数据
//   - 哈希树条目：(根哈希, 块哈希, 层数, 位置) 四元组，唯一
//
// 条目键按 (层数, 位置) 大端编码，字节序遍历即层序遍历。
// 块存在性查询带 LRU 缓存。时间戳取自注入的时钟。
package filestore
