package storage

import "errors"

// 错误定义
var (
	// ErrKeyNotFound 键不存在
	ErrKeyNotFound = errors.New("storage: key not found")

	// ErrDBClosed 数据库已关闭
	ErrDBClosed = errors.New("storage: db closed")

	// ErrInvalidConfig 配置校验失败
	ErrInvalidConfig = errors.New("storage: invalid config")
)
