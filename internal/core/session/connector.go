package session

import (
	"context"

	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
	"github.com/ambernet/go-amber/pkg/types"
)

// ============================================================================
//                              SessionConnector - 会话连接端
// ============================================================================

// SessionConnector 会话连接端
//
// 发起方：拨号到目标地址，以发起方身份执行握手，请求指定用途的
// 会话。整个拨号加握手受 HandshakeTimeout 约束。
type SessionConnector struct {
	transport pkgif.Connector
	env       handshakeEnv
	config    ConnectorConfig
}

// NewSessionConnector 创建会话连接端
func NewSessionConnector(transport pkgif.Connector, signer pkgif.Signer, random pkgif.RandomSource, config ConnectorConfig) *SessionConnector {
	return &SessionConnector{
		transport: transport,
		env: handshakeEnv{
			signer:   signer,
			random:   random,
			versions: config.Versions,
		},
		config: config,
	}
}

// Connect 拨号并握手，返回指定用途的会话
//
// 对端以准入控制拒绝时返回 ErrRejected——这是定义好的结果，
// 区别于协议失败。任何失败都会关闭底层流。
func (c *SessionConnector) Connect(ctx context.Context, addr string, typ types.SessionType) (*Session, error) {
	if c.config.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.HandshakeTimeout)
		defer cancel()
	}

	stream, err := c.transport.Connect(ctx, addr)
	if err != nil {
		return nil, err
	}

	// 超时或取消时关闭流，打断阻塞中的握手读写；
	// 无响应的对端不能无限期阻塞调用方。
	stop := context.AfterFunc(ctx, func() { stream.Close() })
	defer stop()

	ls := newLockedStream(stream)

	peerCert, err := handshakeInitiator(ls, c.env, typ)
	if err != nil {
		ls.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	s := newSession(typ, addr, types.HandshakeTypeConnected, peerCert, ls)
	log.Info("session connected", "id", s.ID, "type", s.Type, "peer", s.NodeID().ShortString(), "addr", addr)
	return s, nil
}
