package session

import (
	"sync"

	"github.com/google/uuid"

	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
	"github.com/ambernet/go-amber/pkg/types"
)

// ============================================================================
//                              lockedStream - 互斥保护的流
// ============================================================================

// lockedStream 互斥保护的双向流
//
// 握手的每一轮消息收发各占一次锁区间，而不是整个会话生命周期
// 一把大锁；锁从不跨网络等待以外的工作持有。
type lockedStream struct {
	mu     sync.Mutex
	stream pkgif.Stream
}

func newLockedStream(stream pkgif.Stream) *lockedStream {
	return &lockedStream{stream: stream}
}

// send 编码并发送一条消息
func (s *lockedStream) send(m packable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFrame(s.stream, m)
}

// recv 读取一帧载荷
func (s *lockedStream) recv() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readFrame(s.stream)
}

// Close 关闭底层流
func (s *lockedStream) Close() error {
	return s.stream.Close()
}

// ============================================================================
//                              Session - 已建立的会话
// ============================================================================

// Session 握手产物
//
// 只有完整状态机成功走完才会构造 Session，不存在部分有效的会话。
// Session 独占持有底层流：握手完成后，其他组件只能通过本会话读写。
type Session struct {
	// ID 会话标识（用于日志关联）
	ID string

	// Type 会话用途
	Type types.SessionType

	// Address 对端地址
	Address string

	// HandshakeType 本节点的握手角色，建立后不可变
	HandshakeType types.SessionHandshakeType

	// Cert 对端已验证的签名证书
	Cert types.Certificate

	stream *lockedStream
}

// 确保 Session 可作为流使用
var _ pkgif.Stream = (*Session)(nil)

func newSession(typ types.SessionType, addr string, hs types.SessionHandshakeType, cert types.Certificate, stream *lockedStream) *Session {
	return &Session{
		ID:            uuid.NewString(),
		Type:          typ,
		Address:       addr,
		HandshakeType: hs,
		Cert:          cert,
		stream:        stream,
	}
}

// NodeID 返回对端节点标识（从已验证的证书公钥派生）
func (s *Session) NodeID() types.NodeID {
	return s.Cert.NodeID()
}

// Read 从会话流读取
//
// 会话由单一任务独占使用，互斥包装只覆盖握手期间；
// 建立后的读写不再加锁，避免全双工使用时读阻塞写。
func (s *Session) Read(p []byte) (int, error) {
	return s.stream.stream.Read(p)
}

// Write 向会话流写入
func (s *Session) Write(p []byte) (int, error) {
	return s.stream.stream.Write(p)
}

// Close 关闭会话及底层流
func (s *Session) Close() error {
	return s.stream.Close()
}
