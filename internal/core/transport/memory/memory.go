// Package memory 提供进程内的内存传输实现
//
// 用于测试和单进程内的多节点场景：一个 Network 维护若干命名的
// 监听端点，Connect 通过缓冲管道建立一对端到端的流。
package memory

import (
	"context"
	"errors"
	"sync"

	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
)

// 错误定义
var (
	// ErrAddrInUse 地址已被监听
	ErrAddrInUse = errors.New("memory: address already in use")

	// ErrConnectionRefused 目标地址无监听者
	ErrConnectionRefused = errors.New("memory: connection refused")

	// ErrAccepterClosed 接受器已关闭
	ErrAccepterClosed = errors.New("memory: accepter closed")
)

// ============================================================================
//                              Network - 进程内网络
// ============================================================================

// Network 进程内虚拟网络
//
// 所有通过同一 Network 创建的端点可以互相拨号。
type Network struct {
	mu        sync.Mutex
	accepters map[string]*Accepter
}

// NewNetwork 创建进程内虚拟网络
func NewNetwork() *Network {
	return &Network{accepters: make(map[string]*Accepter)}
}

// Listen 在虚拟地址上创建接受器
func (n *Network) Listen(addr string) (*Accepter, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.accepters[addr]; ok {
		return nil, ErrAddrInUse
	}

	a := &Accepter{
		network: n,
		addr:    addr,
		pending: make(chan pendingConn),
		done:    make(chan struct{}),
	}
	n.accepters[addr] = a
	return a, nil
}

// Connector 返回该网络的拨号器
func (n *Network) Connector() *Connector {
	return &Connector{network: n}
}

func (n *Network) lookup(addr string) *Accepter {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.accepters[addr]
}

func (n *Network) remove(addr string) {
	n.mu.Lock()
	delete(n.accepters, addr)
	n.mu.Unlock()
}

// ============================================================================
//                              Accepter 实现
// ============================================================================

// pendingConn 等待被接受的拨入连接
type pendingConn struct {
	stream pkgif.Stream
	remote string
}

// Accepter 内存传输接受器
type Accepter struct {
	network *Network
	addr    string
	pending chan pendingConn

	closeOnce sync.Once
	done      chan struct{}
}

// 确保实现接口
var _ pkgif.Accepter = (*Accepter)(nil)

// Accept 接受一个拨入连接
func (a *Accepter) Accept(ctx context.Context) (pkgif.Stream, string, error) {
	select {
	case <-a.done:
		return nil, "", ErrAccepterClosed
	default:
	}

	select {
	case conn := <-a.pending:
		return conn.stream, conn.remote, nil
	case <-a.done:
		return nil, "", ErrAccepterClosed
	case <-ctx.Done():
		return nil, "", ctx.Err()
	}
}

// Addr 返回虚拟监听地址
func (a *Accepter) Addr() string {
	return a.addr
}

// Close 关闭接受器并从网络上摘除
func (a *Accepter) Close() error {
	a.closeOnce.Do(func() {
		close(a.done)
		a.network.remove(a.addr)
	})
	return nil
}

// ============================================================================
//                              Connector 实现
// ============================================================================

// Connector 内存传输拨号器
type Connector struct {
	network *Network
}

// 确保实现接口
var _ pkgif.Connector = (*Connector)(nil)

// Connect 拨号到虚拟地址
func (c *Connector) Connect(ctx context.Context, addr string) (pkgif.Stream, error) {
	accepter := c.network.lookup(addr)
	if accepter == nil {
		return nil, ErrConnectionRefused
	}

	local, remote := Pipe()

	select {
	case accepter.pending <- pendingConn{stream: remote, remote: "memory://" + addr + "/dial"}:
		return local, nil
	case <-accepter.done:
		local.Close()
		remote.Close()
		return nil, ErrConnectionRefused
	case <-ctx.Done():
		local.Close()
		remote.Close()
		return nil, ctx.Err()
	}
}
