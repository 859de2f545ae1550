package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambernet/go-amber/internal/core/identity"
	"github.com/ambernet/go-amber/internal/core/transport/memory"
	"github.com/ambernet/go-amber/pkg/types"
)

// newTestEnv 创建测试用的握手能力集合
func newTestEnv(t *testing.T) handshakeEnv {
	t.Helper()
	signer, err := identity.NewSigner()
	require.NoError(t, err)
	return handshakeEnv{
		signer:   signer,
		random:   identity.NewRandomSource(),
		versions: types.SessionVersionV1,
	}
}

func TestHandshake_BothSides(t *testing.T) {
	initiatorEnv := newTestEnv(t)
	responderEnv := newTestEnv(t)

	a, b := memory.Pipe()
	initiatorStream := newLockedStream(a)
	responderStream := newLockedStream(b)

	type responderResult struct {
		req responderRequest
		err error
	}
	done := make(chan responderResult, 1)
	go func() {
		req, err := handshakeResponder(responderStream, responderEnv)
		if err == nil {
			// 准入判定：接受
			err = responderStream.send(&V1ResultMessage{ResultType: types.V1ResultTypeAccept})
		}
		done <- responderResult{req: req, err: err}
	}()

	peerCert, err := handshakeInitiator(initiatorStream, initiatorEnv, types.SessionTypeNodeFinder)
	require.NoError(t, err)

	res := <-done
	require.NoError(t, res.err)

	t.Run("响应方得到请求的会话用途", func(t *testing.T) {
		assert.Equal(t, types.SessionTypeNodeFinder, res.req.typ)
	})

	t.Run("双方拿到对方已验证的证书", func(t *testing.T) {
		assert.Equal(t, responderEnv.signer.NodeID(), peerCert.NodeID())
		assert.Equal(t, initiatorEnv.signer.NodeID(), res.req.cert.NodeID())
	})
}

func TestHandshake_NoCommonVersion(t *testing.T) {
	initiatorEnv := newTestEnv(t)
	// 对端只提供一个我们不认识的版本位
	responderEnv := newTestEnv(t)
	responderEnv.versions = types.SessionVersionFromBits(1 << 7)

	a, b := memory.Pipe()

	done := make(chan error, 1)
	go func() {
		_, err := handshakeResponder(newLockedStream(b), responderEnv)
		done <- err
	}()

	_, err := handshakeInitiator(newLockedStream(a), initiatorEnv, types.SessionTypeNodeFinder)
	assert.ErrorIs(t, err, ErrNoCommonVersion)
	assert.ErrorIs(t, <-done, ErrNoCommonVersion)
}

func TestHandshake_ReplayedSignatureFails(t *testing.T) {
	responderEnv := newTestEnv(t)

	attackerSigner, err := identity.NewSigner()
	require.NoError(t, err)
	// 攻击者截获的旧签名：对历史挑战的有效证书
	oldNonce := make([]byte, NonceSize)
	capturedCert, err := attackerSigner.Sign(oldNonce)
	require.NoError(t, err)

	a, b := memory.Pipe()

	done := make(chan error, 1)
	go func() {
		_, err := handshakeResponder(newLockedStream(b), responderEnv)
		done <- err
	}()

	attacker := newLockedStream(a)

	// Hello
	require.NoError(t, attacker.send(&HelloMessage{Version: types.SessionVersionV1}))
	payload, err := attacker.recv()
	require.NoError(t, err)
	_, err = unpackHello(payload)
	require.NoError(t, err)

	// Challenge：正常交换随机数
	var challenge V1ChallengeMessage
	copy(challenge.Nonce[:], []byte("attacker nonce, fixed for replay"))
	require.NoError(t, attacker.send(&challenge))
	_, err = attacker.recv()
	require.NoError(t, err)

	// Signature：重放旧证书而非对新挑战签名
	require.NoError(t, attacker.send(&V1SignatureMessage{Cert: *capturedCert}))

	err = <-done
	assert.ErrorIs(t, err, ErrAuthenticationFailed, "重放的签名必须无法满足新挑战")
}

func TestHandshake_UnknownRequestType(t *testing.T) {
	responderEnv := newTestEnv(t)
	initiatorEnv := newTestEnv(t)

	a, b := memory.Pipe()

	done := make(chan error, 1)
	go func() {
		_, err := handshakeResponder(newLockedStream(b), responderEnv)
		done <- err
	}()

	peer := newLockedStream(a)

	// 正常走到签名阶段
	require.NoError(t, peer.send(&HelloMessage{Version: types.SessionVersionV1}))
	_, err := peer.recv()
	require.NoError(t, err)

	_, err = exchangeChallenge(peer, initiatorEnv)
	require.NoError(t, err)

	// 发送未映射的请求类型
	require.NoError(t, peer.send(&V1RequestMessage{RequestType: types.V1RequestType(42)}))

	assert.ErrorIs(t, <-done, ErrUnknownRequestType)
}

func TestHandshakeInitiator_UnknownSessionType(t *testing.T) {
	env := newTestEnv(t)
	a, _ := memory.Pipe()

	_, err := handshakeInitiator(newLockedStream(a), env, types.SessionTypeUnknown)
	assert.ErrorIs(t, err, ErrUnknownSessionType)
}
