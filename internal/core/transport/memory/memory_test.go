package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ConnectAccept(t *testing.T) {
	network := NewNetwork()
	accepter, err := network.Listen("node-a")
	require.NoError(t, err)
	defer accepter.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go func() {
		stream, _, err := accepter.Accept(ctx)
		if err != nil {
			return
		}
		defer stream.Close()
		buf := make([]byte, 5)
		if _, err := stream.Read(buf); err == nil {
			stream.Write(buf)
		}
	}()

	stream, err := network.Connector().Connect(ctx, "node-a")
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Write([]byte("hello"))
	require.NoError(t, err)

	buf := make([]byte, 5)
	_, err = stream.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
}

func TestMemory_ConnectRefused(t *testing.T) {
	network := NewNetwork()

	_, err := network.Connector().Connect(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrConnectionRefused)
}

func TestMemory_DuplicateListen(t *testing.T) {
	network := NewNetwork()

	_, err := network.Listen("node-a")
	require.NoError(t, err)

	_, err = network.Listen("node-a")
	assert.ErrorIs(t, err, ErrAddrInUse)
}

func TestMemory_AcceptAfterClose(t *testing.T) {
	network := NewNetwork()
	accepter, err := network.Listen("node-a")
	require.NoError(t, err)

	require.NoError(t, accepter.Close())

	_, _, err = accepter.Accept(context.Background())
	assert.ErrorIs(t, err, ErrAccepterClosed)

	// 关闭后地址可复用
	_, err = network.Listen("node-a")
	assert.NoError(t, err)
}
