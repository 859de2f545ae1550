package tcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCP_AcceptConnect(t *testing.T) {
	accepter, err := NewAccepter("127.0.0.1:0", DefaultConfig())
	require.NoError(t, err)
	defer accepter.Close()

	connector := NewConnector(DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type acceptResult struct {
		addr string
		err  error
	}
	done := make(chan acceptResult, 1)
	go func() {
		stream, addr, err := accepter.Accept(ctx)
		if stream != nil {
			defer stream.Close()
			// 回显一个字节，验证双向可用
			buf := make([]byte, 1)
			if _, rerr := stream.Read(buf); rerr == nil {
				stream.Write(buf)
			}
		}
		done <- acceptResult{addr: addr, err: err}
	}()

	stream, err := connector.Connect(ctx, accepter.Addr())
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Write([]byte{0x7f})
	require.NoError(t, err)

	buf := make([]byte, 1)
	_, err = stream.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, byte(0x7f), buf[0])

	res := <-done
	require.NoError(t, res.err)
	assert.NotEmpty(t, res.addr)
}

func TestTCP_AcceptCanceled(t *testing.T) {
	accepter, err := NewAccepter("127.0.0.1:0", DefaultConfig())
	require.NoError(t, err)
	defer accepter.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, _, err = accepter.Accept(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTCP_AcceptAfterClose(t *testing.T) {
	accepter, err := NewAccepter("127.0.0.1:0", DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, accepter.Close())
	// 重复关闭幂等
	require.NoError(t, accepter.Close())

	_, _, err = accepter.Accept(context.Background())
	assert.ErrorIs(t, err, ErrAccepterClosed)
}

func TestTCP_ConnectRefused(t *testing.T) {
	connector := NewConnector(DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// 没有监听者的端口
	_, err := connector.Connect(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}
