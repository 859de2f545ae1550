package node

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambernet/go-amber/internal/core/session"
	"github.com/ambernet/go-amber/pkg/types"
)

// fakeDialer 可编程的会话拨号器
type fakeDialer struct {
	mu    sync.Mutex
	fail  map[string]bool
	dials map[string]int
}

func newFakeDialer(failAddrs ...string) *fakeDialer {
	fail := make(map[string]bool)
	for _, a := range failAddrs {
		fail[a] = true
	}
	return &fakeDialer{fail: fail, dials: make(map[string]int)}
}

func (d *fakeDialer) Connect(_ context.Context, addr string, typ types.SessionType) (*session.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials[addr]++
	if d.fail[addr] {
		return nil, errors.New("dial refused")
	}
	return &session.Session{Type: typ, Address: addr, HandshakeType: types.HandshakeTypeConnected}, nil
}

func (d *fakeDialer) dialCount(addr string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials[addr]
}

func (d *fakeDialer) totalDials() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	total := 0
	for _, n := range d.dials {
		total += n
	}
	return total
}

// fakeSource 可编程的节点引用源
type fakeSource struct {
	mu    sync.Mutex
	refs  []types.NodeRef
	errs  int
	calls int
}

func (s *fakeSource) GetNodeRefs(_ context.Context) ([]types.NodeRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.errs > 0 {
		s.errs--
		return nil, errors.New("source unavailable")
	}
	return s.refs, nil
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testFinderConfig() FinderConfig {
	return FinderConfig{
		CycleInterval: 30 * time.Second,
		MemberTTL:     time.Hour,
		SessionBuffer: 8,
	}
}

// waitSession 在有限时间内从交付通道取出一个会话
func waitSession(t *testing.T, f *NodeFinder) *session.Session {
	t.Helper()
	select {
	case s := <-f.Sessions():
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("no session delivered")
		return nil
	}
}

// advanceCycle 等待循环进入轮间等待后推进模拟时钟
func advanceCycle(mock *clock.Mock, d time.Duration) {
	time.Sleep(20 * time.Millisecond)
	mock.Add(d)
}

func TestNodeFinder_Discover(t *testing.T) {
	mock := clock.NewMock()
	dialer := newFakeDialer("addr-1-dead")
	source := &fakeSource{refs: []types.NodeRef{
		types.NewNodeRef("node-1", "addr-1-dead", "addr-1-live"),
		types.NewNodeRef("node-2", "addr-2"),
	}}

	finder, err := NewNodeFinder(dialer, source, mock, testFinderConfig())
	require.NoError(t, err)
	defer finder.Terminate()

	first := waitSession(t, finder)
	second := waitSession(t, finder)

	t.Run("按地址顺序尝试，第一个成功的地址胜出", func(t *testing.T) {
		assert.Equal(t, "addr-1-live", first.Address)
		assert.Equal(t, 1, dialer.dialCount("addr-1-dead"))
		assert.Equal(t, 1, dialer.dialCount("addr-1-live"))
	})

	t.Run("每个候选各建立一个会话", func(t *testing.T) {
		assert.Equal(t, "addr-2", second.Address)
		assert.Equal(t, types.SessionTypeNodeFinder, first.Type)
		assert.Equal(t, types.SessionTypeNodeFinder, second.Type)
	})
}

func TestNodeFinder_DiscoveryIdempotence(t *testing.T) {
	mock := clock.NewMock()
	dialer := newFakeDialer()
	source := &fakeSource{refs: []types.NodeRef{
		types.NewNodeRef("node-1", "addr-1"),
	}}

	config := testFinderConfig()
	finder, err := NewNodeFinder(dialer, source, mock, config)
	require.NoError(t, err)
	defer finder.Terminate()

	waitSession(t, finder)
	require.Equal(t, 1, dialer.totalDials())

	// 无过期、无新候选的第二轮不得重复连接已持有的节点
	advanceCycle(mock, config.CycleInterval)
	require.Eventually(t, func() bool {
		return source.callCount() >= 2
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, dialer.totalDials())
}

func TestNodeFinder_ExpiryAllowsReconnect(t *testing.T) {
	mock := clock.NewMock()
	dialer := newFakeDialer()
	source := &fakeSource{refs: []types.NodeRef{
		types.NewNodeRef("node-1", "addr-1"),
	}}

	config := testFinderConfig()
	config.MemberTTL = 45 * time.Second
	finder, err := NewNodeFinder(dialer, source, mock, config)
	require.NoError(t, err)
	defer finder.Terminate()

	waitSession(t, finder)

	// 第二轮：条目未过期，不重连
	advanceCycle(mock, config.CycleInterval)
	require.Eventually(t, func() bool {
		return source.callCount() >= 2
	}, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, 1, dialer.dialCount("addr-1"))

	// 第三轮：条目已超过 TTL，refresh 清除后重新连接
	advanceCycle(mock, config.CycleInterval)
	waitSession(t, finder)
	assert.Equal(t, 2, dialer.dialCount("addr-1"))
}

func TestNodeFinder_SourceErrorNonFatal(t *testing.T) {
	mock := clock.NewMock()
	dialer := newFakeDialer()
	source := &fakeSource{
		errs: 1,
		refs: []types.NodeRef{types.NewNodeRef("node-1", "addr-1")},
	}

	config := testFinderConfig()
	finder, err := NewNodeFinder(dialer, source, mock, config)
	require.NoError(t, err)
	defer finder.Terminate()

	// 第一轮引用源失败，循环存活；下一轮正常发现
	require.Eventually(t, func() bool {
		return source.callCount() >= 1
	}, 5*time.Second, 10*time.Millisecond)

	advanceCycle(mock, config.CycleInterval)
	s := waitSession(t, finder)
	assert.Equal(t, "addr-1", s.Address)
}

func TestNodeFinder_AllAddrsFailSkipsCandidate(t *testing.T) {
	mock := clock.NewMock()
	dialer := newFakeDialer("addr-1", "addr-2")
	source := &fakeSource{refs: []types.NodeRef{
		types.NewNodeRef("node-1", "addr-1", "addr-2"),
	}}

	config := testFinderConfig()
	finder, err := NewNodeFinder(dialer, source, mock, config)
	require.NoError(t, err)
	defer finder.Terminate()

	require.Eventually(t, func() bool {
		return source.callCount() >= 1 && dialer.totalDials() >= 2
	}, 5*time.Second, 10*time.Millisecond)

	// 失败的候选不进成员集合，下一轮重试
	advanceCycle(mock, config.CycleInterval)
	require.Eventually(t, func() bool {
		return dialer.totalDials() >= 4
	}, 5*time.Second, 10*time.Millisecond)
}

func TestNodeFinder_TerminateIdempotent(t *testing.T) {
	mock := clock.NewMock()
	dialer := newFakeDialer()
	source := &fakeSource{}

	finder, err := NewNodeFinder(dialer, source, mock, testFinderConfig())
	require.NoError(t, err)

	require.NoError(t, finder.Terminate())
	require.NoError(t, finder.Terminate())
}

func TestNodeFinder_InvalidConfig(t *testing.T) {
	_, err := NewNodeFinder(newFakeDialer(), &fakeSource{}, clock.NewMock(), FinderConfig{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
