package main

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/ambernet/go-amber/internal/core/node"
	"github.com/ambernet/go-amber/internal/core/session"
	"github.com/ambernet/go-amber/pkg/types"
)

// peerTracker 持有已建立的会话直到进程退出
//
// 会话的上层消费（块交换等）不在本进程的职责内；
// 这里保持连接打开，退出时统一关闭。
type peerTracker struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newPeerTracker() *peerTracker {
	return &peerTracker{sessions: make(map[string]*session.Session)}
}

func (p *peerTracker) track(s *session.Session) {
	p.mu.Lock()
	p.sessions[s.ID] = s
	p.mu.Unlock()
	log.Info("peer session established",
		"id", s.ID, "peer", s.NodeID().ShortString(),
		"role", s.HandshakeType, "addr", s.Address)
}

func (p *peerTracker) closeAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	for _, s := range p.sessions {
		err = multierr.Append(err, s.Close())
	}
	p.sessions = make(map[string]*session.Session)
	return err
}

// runEngine 消费接入端与发现循环产出的会话
func runEngine(lc fx.Lifecycle, accepter *session.SessionAccepter, finder *node.NodeFinder) {
	tracker := newPeerTracker()
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			wg.Add(2)

			go func() {
				defer wg.Done()
				for {
					s, err := accepter.Accept(ctx, types.SessionTypeNodeFinder)
					if err != nil {
						if !errors.Is(err, context.Canceled) && !errors.Is(err, session.ErrAccepterClosed) {
							log.Warn("accept loop stopped", "err", err)
						}
						return
					}
					tracker.track(s)
				}
			}()

			go func() {
				defer wg.Done()
				for {
					select {
					case s := <-finder.Sessions():
						tracker.track(s)
					case <-ctx.Done():
						return
					}
				}
			}()

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			wg.Wait()
			return tracker.closeAll()
		},
	})
}
