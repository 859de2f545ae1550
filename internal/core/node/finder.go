package node

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"

	"github.com/ambernet/go-amber/internal/core/session"
	"github.com/ambernet/go-amber/internal/util/logger"
	"github.com/ambernet/go-amber/internal/util/vset"
	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
	"github.com/ambernet/go-amber/pkg/types"
)

var log = logger.Logger("node")

// SessionDialer 建立指定用途出站会话的能力
//
// 由 session.SessionConnector 实现；测试中可以替换。
type SessionDialer interface {
	Connect(ctx context.Context, addr string, typ types.SessionType) (*session.Session, error)
}

// ============================================================================
//                              NodeFinder - 发现循环
// ============================================================================

// NodeFinder 节点发现循环
//
// 成员集合以节点标识为键：一个节点的多个地址算同一个成员。
// 集合中的条目代表"当前持有或刚尝试成功"，在 TTL 内不会重复连接。
type NodeFinder struct {
	dialer  SessionDialer
	source  pkgif.NodeRefSource
	clock   clock.Clock
	config  FinderConfig
	members *vset.VolatileSet[types.NodeID]

	sessions chan *session.Session

	ctx    context.Context
	cancel context.CancelFunc
	eg     *errgroup.Group

	terminateOnce sync.Once
}

// NewNodeFinder 创建节点发现循环并立即启动
func NewNodeFinder(dialer SessionDialer, source pkgif.NodeRefSource, clk clock.Clock, config FinderConfig) (*NodeFinder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)

	f := &NodeFinder{
		dialer:   dialer,
		source:   source,
		clock:    clk,
		config:   config,
		members:  vset.New[types.NodeID](config.MemberTTL, clk),
		sessions: make(chan *session.Session, config.SessionBuffer),
		ctx:      ctx,
		cancel:   cancel,
		eg:       eg,
	}

	f.eg.Go(f.run)
	return f, nil
}

// Sessions 返回已建立出站会话的交付通道
//
// 消费方负责会话的后续使用与关闭。Terminate 后通道不再有新会话，
// 但不会被关闭，排队中的会话仍可取出。
func (f *NodeFinder) Sessions() <-chan *session.Session {
	return f.sessions
}

// Terminate 协作式关闭
//
// 取消只在候选之间的边界生效：进行中的连接尝试自然完成或超时。
// 幂等。
func (f *NodeFinder) Terminate() error {
	f.terminateOnce.Do(func() {
		f.cancel()
	})
	return f.eg.Wait()
}

// run 发现循环主体
func (f *NodeFinder) run() error {
	for {
		f.runCycle()

		if err := f.sleep(f.config.CycleInterval); err != nil {
			return nil
		}
	}
}

// sleep 可取消的轮间等待
func (f *NodeFinder) sleep(d time.Duration) error {
	timer := f.clock.Timer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-f.ctx.Done():
		return f.ctx.Err()
	}
}

// runCycle 执行一轮发现
func (f *NodeFinder) runCycle() {
	f.members.Refresh()

	refs, err := f.source.GetNodeRefs(f.ctx)
	if err != nil {
		// 引用源暂时不可用不影响循环存活
		log.Warn("fetch node refs failed", "err", err)
		return
	}

	for _, ref := range refs {
		// 取消只在候选之间生效
		if f.ctx.Err() != nil {
			return
		}
		if ref.Empty() || f.members.Contains(ref.ID) {
			continue
		}

		s, ok := f.tryConnect(ref)
		if !ok {
			// 本轮跳过，下轮自然重试
			continue
		}

		f.members.Insert(ref.ID)

		select {
		case f.sessions <- s:
			log.Info("peer discovered", "peer", ref.ID.ShortString(), "addr", s.Address)
		case <-f.ctx.Done():
			s.Close()
			return
		}
	}
}

// tryConnect 按地址顺序尝试连接候选节点，第一个成功的地址胜出
func (f *NodeFinder) tryConnect(ref types.NodeRef) (*session.Session, bool) {
	for _, addr := range ref.Addrs {
		s, err := f.dialer.Connect(f.ctx, addr, types.SessionTypeNodeFinder)
		if err != nil {
			log.Debug("connect candidate failed", "peer", ref.ID.ShortString(), "addr", addr, "err", err)
			continue
		}
		return s, true
	}
	return nil, false
}
