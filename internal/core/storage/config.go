package storage

// Config 存储配置
type Config struct {
	// Path BadgerDB 数据库目录
	Path string

	// SyncWrites 每次写入同步到磁盘，更安全但性能较低
	SyncWrites bool
}

// DefaultConfig 默认存储配置
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: false,
	}
}

// Validate 校验配置
func (c Config) Validate() error {
	if c.Path == "" {
		return ErrInvalidConfig
	}
	return nil
}
