// Package logger 提供 amber 的统一日志系统
//
// 基于标准库 log/slog，支持：
//   - 按子系统配置日志级别
//   - 环境变量配置（AMBER_LOG_LEVEL, AMBER_LOG_FORMAT）
//   - 结构化日志
//
// 使用示例:
//
//	package session
//
//	import "github.com/ambernet/go-amber/internal/util/logger"
//
//	var log = logger.Logger("session")
//
//	func foo() {
//	    log.Info("session established", "peer", nodeID, "type", typ)
//	    log.Error("handshake failed", "err", err, "addr", addr)
//	}
//
// 环境变量配置:
//
//	# 所有子系统 info，session 子系统 debug
//	AMBER_LOG_LEVEL=session=debug,info
//
//	# JSON 格式输出
//	AMBER_LOG_FORMAT=json
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	// loggers 缓存各子系统的 Logger
	loggers sync.Map // map[string]*slog.Logger

	// handlers 缓存各子系统的 Handler（用于动态调整级别）
	handlers sync.Map // map[string]*subsystemHandler

	// output 全局日志输出目标
	output   io.Writer = os.Stderr
	outputMu sync.RWMutex
)

// Logger 获取指定子系统的 Logger
//
// 级别由 AMBER_LOG_LEVEL 决定，同一子系统多次调用返回同一实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := configFromEnv()
	h := newSubsystemHandler(subsystem, cfg.levelFor(subsystem), cfg.format)

	l := slog.New(h)
	actual, loaded := loggers.LoadOrStore(subsystem, l)
	if !loaded {
		handlers.Store(subsystem, h)
	}
	return actual.(*slog.Logger)
}

// SetLevel 动态设置子系统的日志级别
func SetLevel(subsystem string, level slog.Level) {
	if h, ok := handlers.Load(subsystem); ok {
		h.(*subsystemHandler).setLevel(level)
	}
}

// SetOutput 设置全局日志输出目标
//
// 所有已创建的 Logger 的输出会随之切换。
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}

// Discard 返回一个丢弃所有日志的 Logger
//
// 主要用于测试，避免日志输出干扰测试结果。
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// ============================================================================
//                              Handler 实现
// ============================================================================

// dynamicWriter 每次写入时查找当前的全局输出目标
type dynamicWriter struct{}

func (dynamicWriter) Write(p []byte) (int, error) {
	outputMu.RLock()
	w := output
	outputMu.RUnlock()
	return w.Write(p)
}

// subsystemHandler 支持运行时调整级别的 slog.Handler
type subsystemHandler struct {
	level *slog.LevelVar
	inner slog.Handler
}

func newSubsystemHandler(subsystem string, level slog.Level, format logFormat) *subsystemHandler {
	lv := new(slog.LevelVar)
	lv.Set(level)

	opts := &slog.HandlerOptions{Level: lv}

	var inner slog.Handler
	if format == formatJSON {
		inner = slog.NewJSONHandler(dynamicWriter{}, opts)
	} else {
		inner = slog.NewTextHandler(dynamicWriter{}, opts)
	}

	return &subsystemHandler{
		level: lv,
		inner: inner.WithAttrs([]slog.Attr{slog.String("subsystem", subsystem)}),
	}
}

func (h *subsystemHandler) setLevel(level slog.Level) {
	h.level.Set(level)
}

func (h *subsystemHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *subsystemHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *subsystemHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &subsystemHandler{level: h.level, inner: h.inner.WithAttrs(attrs)}
}

func (h *subsystemHandler) WithGroup(name string) slog.Handler {
	return &subsystemHandler{level: h.level, inner: h.inner.WithGroup(name)}
}

// discardHandler 丢弃所有日志记录
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
