// Package interfaces 定义 Amber 公共接口
//
// 本文件定义传输层接口：接受入站连接与拨号出站连接。
package interfaces

import (
	"context"
	"io"
)

// Stream 双向字节流
//
// 握手完成后流的所有权移交给 Session，此后只能通过该会话读写。
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
}

// Accepter 定义入站传输接口
type Accepter interface {
	// Accept 接受一个入站连接，返回流和对端地址
	//
	// 阻塞直到有连接到达、ctx 取消或接受器关闭。
	Accept(ctx context.Context) (Stream, string, error)

	// Addr 返回本地监听地址
	Addr() string

	// Close 关闭接受器，使阻塞中的 Accept 返回错误
	Close() error
}

// Connector 定义出站传输接口
type Connector interface {
	// Connect 拨号到指定地址
	//
	// 超时与取消通过 ctx 控制。
	Connect(ctx context.Context, addr string) (Stream, error)
}
