// Package tcp 提供基于 TCP 的传输层实现
//
// 只暴露会话层需要的两个能力：接受入站连接（Accepter）和
// 拨号出站连接（Connector）。连接加密、多路复用等不在本层处理。
package tcp

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
)

// 错误定义
var (
	// ErrAccepterClosed 接受器已关闭
	ErrAccepterClosed = errors.New("tcp: accepter closed")
)

// Config TCP 传输配置
type Config struct {
	// KeepAlive TCP keep-alive 间隔（0 表示禁用）
	KeepAlive time.Duration

	// NoDelay 是否禁用 Nagle 算法
	NoDelay bool
}

// DefaultConfig 默认 TCP 传输配置
func DefaultConfig() Config {
	return Config{
		KeepAlive: 30 * time.Second,
		NoDelay:   true,
	}
}

// ============================================================================
//                              Accepter 实现
// ============================================================================

// Accepter TCP 入站传输
type Accepter struct {
	listener *net.TCPListener
	config   Config
	closed   atomic.Bool
}

// 确保实现接口
var _ pkgif.Accepter = (*Accepter)(nil)

// NewAccepter 在指定地址上监听
func NewAccepter(addr string, config Config) (*Accepter, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	listener, err := net.ListenTCP("tcp", tcpAddr)
	if err != nil {
		return nil, err
	}

	return &Accepter{listener: listener, config: config}, nil
}

// Accept 接受一个入站连接
func (a *Accepter) Accept(ctx context.Context) (pkgif.Stream, string, error) {
	if a.closed.Load() {
		return nil, "", ErrAccepterClosed
	}

	// ctx 取消时通过截止时间打断阻塞中的 Accept
	stop := context.AfterFunc(ctx, func() {
		a.listener.SetDeadline(time.Now())
	})
	defer stop()

	conn, err := a.listener.AcceptTCP()
	if err != nil {
		if a.closed.Load() {
			return nil, "", ErrAccepterClosed
		}
		if ctx.Err() != nil {
			a.listener.SetDeadline(time.Time{})
			return nil, "", ctx.Err()
		}
		return nil, "", err
	}

	a.applyOptions(conn)
	return conn, conn.RemoteAddr().String(), nil
}

// Addr 返回本地监听地址
func (a *Accepter) Addr() string {
	return a.listener.Addr().String()
}

// Close 关闭接受器
func (a *Accepter) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return nil
	}
	return a.listener.Close()
}

func (a *Accepter) applyOptions(conn *net.TCPConn) {
	if a.config.NoDelay {
		conn.SetNoDelay(true)
	}
	if a.config.KeepAlive > 0 {
		conn.SetKeepAlive(true)
		conn.SetKeepAlivePeriod(a.config.KeepAlive)
	}
}

// ============================================================================
//                              Connector 实现
// ============================================================================

// Connector TCP 出站传输
type Connector struct {
	config Config
}

// 确保实现接口
var _ pkgif.Connector = (*Connector)(nil)

// NewConnector 创建 TCP 拨号器
func NewConnector(config Config) *Connector {
	return &Connector{config: config}
}

// Connect 拨号到指定地址
func (c *Connector) Connect(ctx context.Context, addr string) (pkgif.Stream, error) {
	dialer := &net.Dialer{KeepAlive: c.config.KeepAlive}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok && c.config.NoDelay {
		tcpConn.SetNoDelay(true)
	}
	return conn, nil
}
