package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// logFormat 日志输出格式
type logFormat int

const (
	// formatText 文本格式（默认）
	formatText logFormat = iota
	// formatJSON JSON 格式
	formatJSON
)

// config 日志配置
type config struct {
	defaultLevel    slog.Level
	subsystemLevels map[string]slog.Level
	format          logFormat
}

// levelFor 获取指定子系统的日志级别
func (c *config) levelFor(subsystem string) slog.Level {
	if level, ok := c.subsystemLevels[subsystem]; ok {
		return level
	}
	return c.defaultLevel
}

var (
	configCache *config
	configOnce  sync.Once
)

// configFromEnv 从环境变量解析配置
//
// 环境变量:
//   - AMBER_LOG_LEVEL: 级别配置，格式: 子系统=级别,子系统=级别,默认级别
//     示例: session=debug,node=warn,info
//   - AMBER_LOG_FORMAT: text 或 json
func configFromEnv() *config {
	configOnce.Do(func() {
		configCache = parseConfig()
	})
	return configCache
}

func parseConfig() *config {
	cfg := &config{
		defaultLevel:    slog.LevelInfo,
		subsystemLevels: make(map[string]slog.Level),
		format:          formatText,
	}

	if levelStr := os.Getenv("AMBER_LOG_LEVEL"); levelStr != "" {
		parseLevelConfig(cfg, levelStr)
	}

	if strings.EqualFold(os.Getenv("AMBER_LOG_FORMAT"), "json") {
		cfg.format = formatJSON
	}

	return cfg
}

// parseLevelConfig 解析级别配置字符串
// 格式: subsystem=level,subsystem=level,defaultLevel
func parseLevelConfig(cfg *config, levelStr string) {
	for _, part := range strings.Split(levelStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if kv := strings.SplitN(part, "=", 2); len(kv) == 2 {
			if level, ok := parseLevel(strings.TrimSpace(kv[1])); ok {
				cfg.subsystemLevels[strings.TrimSpace(kv[0])] = level
			}
		} else if level, ok := parseLevel(part); ok {
			cfg.defaultLevel = level
		}
	}
}

// parseLevel 解析日志级别名称
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
