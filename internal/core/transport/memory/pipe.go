package memory

import (
	"bytes"
	"io"
	"sync"

	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
)

// ============================================================================
//                              缓冲双工管道
// ============================================================================
//
// net.Pipe 是同步管道：写入阻塞到对端读取为止。握手双方会同时先发
// Hello 再收，对称的同步写造成互等。这里提供带缓冲的双工管道，
// 语义与 TCP 一致：小的写入立即完成，进入对端的接收缓冲。

// Pipe 返回一对互联的缓冲流
func Pipe() (pkgif.Stream, pkgif.Stream) {
	ab := newPipeBuffer()
	ba := newPipeBuffer()
	return &pipeConn{rd: ba, wr: ab}, &pipeConn{rd: ab, wr: ba}
}

// pipeBuffer 单方向的字节缓冲
type pipeBuffer struct {
	mu     sync.Mutex
	cond   *sync.Cond
	data   bytes.Buffer
	closed bool
}

func newPipeBuffer() *pipeBuffer {
	b := &pipeBuffer{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *pipeBuffer) write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, io.ErrClosedPipe
	}
	n, _ := b.data.Write(p)
	b.cond.Broadcast()
	return n, nil
}

func (b *pipeBuffer) read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.data.Len() == 0 && !b.closed {
		b.cond.Wait()
	}
	if b.data.Len() == 0 {
		return 0, io.EOF
	}
	return b.data.Read(p)
}

func (b *pipeBuffer) close() {
	b.mu.Lock()
	b.closed = true
	b.cond.Broadcast()
	b.mu.Unlock()
}

// pipeConn 管道的一端
type pipeConn struct {
	rd *pipeBuffer
	wr *pipeBuffer
}

func (c *pipeConn) Read(p []byte) (int, error)  { return c.rd.read(p) }
func (c *pipeConn) Write(p []byte) (int, error) { return c.wr.write(p) }

// Close 关闭两个方向：对端读到 EOF，本端后续读写失败
func (c *pipeConn) Close() error {
	c.wr.close()
	c.rd.close()
	return nil
}
