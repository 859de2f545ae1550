// Package storage 提供基于 BadgerDB 的嵌入式持久化存储
//
// DB 持有一个 BadgerDB 实例；Scope 返回带键前缀隔离的视图，
// 各仓库在自己的前缀下读写，互不干扰。测试使用 t.TempDir()
// 创建临时目录，与生产路径一致。
package storage
