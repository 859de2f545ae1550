package filestore

import "errors"

// 错误定义
var (
	// ErrFileNotFound 发布文件不存在
	ErrFileNotFound = errors.New("filestore: file not found")

	// ErrDuplicateLayer 哈希树条目四元组已存在
	ErrDuplicateLayer = errors.New("filestore: duplicate merkle layer")

	// ErrLayerConflict 同一树位置已有不同的块哈希
	ErrLayerConflict = errors.New("filestore: merkle layer conflict")
)
