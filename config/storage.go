package config

import "errors"

// StorageConfig 存储配置
type StorageConfig struct {
	// Path BadgerDB 数据库目录
	Path string `json:"path"`

	// SyncWrites 每次写入同步到磁盘
	SyncWrites bool `json:"sync_writes"`

	// BlockCacheSize 块存在性 LRU 缓存条目数
	BlockCacheSize int `json:"block_cache_size"`
}

// DefaultStorageConfig 返回默认存储配置
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Path:           "./data/amber.db",
		SyncWrites:     false,
		BlockCacheSize: 4096,
	}
}

// Validate 验证存储配置
func (c StorageConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path required")
	}
	if c.BlockCacheSize <= 0 {
		return errors.New("block_cache_size must be positive")
	}
	return nil
}
