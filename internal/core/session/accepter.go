package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ambernet/go-amber/internal/util/logger"
	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
	"github.com/ambernet/go-amber/pkg/types"
)

var log = logger.Logger("session")

// ============================================================================
//                              sessionQueue - 预留式有界队列
// ============================================================================

// sessionQueue 每种会话用途一个的有界队列
//
// 两阶段入队：先 reserve 预留槽位，准入判定通过后 commit 投递。
// 预留成功后的投递保证不阻塞——队列容量是唯一的准入控制机制，
// 绝不会产出一个无处安放的会话。
type sessionQueue struct {
	slots chan struct{}
	out   chan *Session
}

func newSessionQueue(capacity int) *sessionQueue {
	return &sessionQueue{
		slots: make(chan struct{}, capacity),
		out:   make(chan *Session, capacity),
	}
}

// reserve 尝试预留一个槽位，队列满返回 false
func (q *sessionQueue) reserve() bool {
	select {
	case q.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// commit 投递会话到已预留的槽位（不阻塞）
func (q *sessionQueue) commit(s *Session) {
	q.out <- s
}

// release 消费一个会话后归还槽位
func (q *sessionQueue) release() {
	<-q.slots
}

// ============================================================================
//                              SessionAccepter - 会话接入端
// ============================================================================

// SessionAccepter 会话接入端
//
// 固定大小的工作池持续接受入站传输连接，以响应方身份执行握手，
// 把产出的会话按用途路由到各自的有界队列。单条连接的任何失败
// （恶意对端、验证失败、传输错误）只终止该连接，不影响其他
// 工作协程和池子的存活。
type SessionAccepter struct {
	transport pkgif.Accepter
	env       handshakeEnv
	config    AccepterConfig

	queues map[types.SessionType]*sessionQueue

	ctx    context.Context
	cancel context.CancelFunc
	eg     *errgroup.Group

	terminateOnce sync.Once
}

// NewSessionAccepter 创建会话接入端并启动工作池
//
// 为每种已知会话用途建立队列；WorkerCount 个工作协程立即开始
// 接受连接。
func NewSessionAccepter(transport pkgif.Accepter, signer pkgif.Signer, random pkgif.RandomSource, config AccepterConfig) (*SessionAccepter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	queues := make(map[types.SessionType]*sessionQueue)
	for _, typ := range []types.SessionType{types.SessionTypeNodeFinder} {
		queues[typ] = newSessionQueue(config.QueueCapacity)
	}

	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)

	a := &SessionAccepter{
		transport: transport,
		env: handshakeEnv{
			signer:   signer,
			random:   random,
			versions: config.Versions,
		},
		config: config,
		queues: queues,
		ctx:    ctx,
		cancel: cancel,
		eg:     eg,
	}

	for i := 0; i < config.WorkerCount; i++ {
		a.eg.Go(a.runWorker)
	}

	return a, nil
}

// Accept 取出一个指定用途的会话
//
// 阻塞直到有会话可用、ctx 取消或接入端终止（返回 ErrAccepterClosed）。
// 并发调用按握手完成的先后顺序获得会话（队列语义）。
// 请求未配置的会话用途是配置错误，立即返回 ErrUnknownSessionType。
func (a *SessionAccepter) Accept(ctx context.Context, typ types.SessionType) (*Session, error) {
	q, ok := a.queues[typ]
	if !ok {
		return nil, ErrUnknownSessionType
	}

	// 终止后仍先交付已入队的会话
	select {
	case s := <-q.out:
		q.release()
		return s, nil
	default:
	}

	select {
	case s := <-q.out:
		q.release()
		return s, nil
	case <-a.ctx.Done():
		return nil, ErrAccepterClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Terminate 协作式关闭
//
// 发出取消信号并等待所有工作协程退出：不再开始新的接受，
// 进行中的握手自然完成或失败。幂等，可与 Accept 并发调用。
func (a *SessionAccepter) Terminate() error {
	a.terminateOnce.Do(func() {
		a.cancel()
	})
	return a.eg.Wait()
}

// ============================================================================
//                              工作协程
// ============================================================================

// runWorker 单个接受工作协程的主循环
func (a *SessionAccepter) runWorker() error {
	for {
		if err := a.sleep(a.config.AcceptInterval); err != nil {
			return nil
		}

		if err := a.acceptOne(); err != nil {
			if a.ctx.Err() != nil {
				return nil
			}
			// 单条连接的失败不影响池子
			log.Debug("inbound handshake failed", "err", err)
		}
	}
}

// sleep 可取消的接受间隔
func (a *SessionAccepter) sleep(d time.Duration) error {
	if d <= 0 {
		return a.ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-a.ctx.Done():
		return a.ctx.Err()
	}
}

// acceptOne 接受一条连接并完成响应方握手
func (a *SessionAccepter) acceptOne() error {
	stream, addr, err := a.transport.Accept(a.ctx)
	if err != nil {
		return err
	}

	// 终止时关闭流，打断阻塞中的握手读写
	stop := context.AfterFunc(a.ctx, func() { stream.Close() })
	defer stop()

	ls := newLockedStream(stream)

	request, err := handshakeResponder(ls, a.env)
	if err != nil {
		ls.Close()
		return err
	}
	// 握手完成的流属于会话，终止不再关闭它
	stop()

	q := a.queues[request.typ]
	if !q.reserve() {
		// 队列满：准入控制拒绝，正常结果而非错误
		err := ls.send(&V1ResultMessage{ResultType: types.V1ResultTypeReject})
		ls.Close()
		if err != nil {
			return err
		}
		log.Debug("session rejected, queue full", "type", request.typ, "addr", addr)
		return nil
	}

	if err := ls.send(&V1ResultMessage{ResultType: types.V1ResultTypeAccept}); err != nil {
		q.release()
		ls.Close()
		return err
	}

	s := newSession(request.typ, addr, types.HandshakeTypeAccepted, request.cert, ls)
	q.commit(s)
	log.Info("session accepted", "id", s.ID, "type", s.Type, "peer", s.NodeID().ShortString(), "addr", addr)
	return nil
}
