package session

import (
	"fmt"

	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
	"github.com/ambernet/go-amber/pkg/types"
)

// ============================================================================
//                              共享握手阶段
// ============================================================================
//
// Hello 和 Challenge/Signature 阶段双方完全对称，发起方与响应方
// 复用同一实现；分叉只发生在 Request/Result 阶段。

// handshakeEnv 握手所需的能力集合
type handshakeEnv struct {
	signer   pkgif.Signer
	random   pkgif.RandomSource
	versions types.SessionVersion
}

// exchangeHello 交换版本位集并协商
//
// 双方各自发送己方位集、接收对方位集，协商结果为按位与。
// 交集为空返回 ErrNoCommonVersion，握手终止。
func exchangeHello(stream *lockedStream, offered types.SessionVersion) (types.SessionVersion, error) {
	if err := stream.send(&HelloMessage{Version: offered}); err != nil {
		return 0, fmt.Errorf("send hello: %w", err)
	}

	payload, err := stream.recv()
	if err != nil {
		return 0, fmt.Errorf("recv hello: %w", err)
	}
	hello, err := unpackHello(payload)
	if err != nil {
		return 0, err
	}

	negotiated := offered.Intersect(hello.Version)
	if negotiated.IsEmpty() {
		return 0, fmt.Errorf("%w: offered %s, peer %s", ErrNoCommonVersion, offered, hello.Version)
	}
	return negotiated, nil
}

// exchangeChallenge 挑战-签名阶段（仅 V1）
//
// 本方生成 32 字节随机数发给对端，对「对端发来的随机数」签名；
// 验证始终针对本方自己生成并保留的随机数，绝不信任对端声称签过
// 的内容。旧签名无法满足新挑战（抗重放）。
func exchangeChallenge(stream *lockedStream, env handshakeEnv) (types.Certificate, error) {
	nonce, err := env.random.GetBytes(NonceSize)
	if err != nil {
		return types.Certificate{}, fmt.Errorf("generate nonce: %w", err)
	}

	var challenge V1ChallengeMessage
	copy(challenge.Nonce[:], nonce)
	if err := stream.send(&challenge); err != nil {
		return types.Certificate{}, fmt.Errorf("send challenge: %w", err)
	}

	payload, err := stream.recv()
	if err != nil {
		return types.Certificate{}, fmt.Errorf("recv challenge: %w", err)
	}
	peerChallenge, err := unpackChallenge(payload)
	if err != nil {
		return types.Certificate{}, err
	}

	// 对对端的随机数签名
	cert, err := env.signer.Sign(peerChallenge.Nonce[:])
	if err != nil {
		return types.Certificate{}, fmt.Errorf("sign peer nonce: %w", err)
	}
	if err := stream.send(&V1SignatureMessage{Cert: *cert}); err != nil {
		return types.Certificate{}, fmt.Errorf("send signature: %w", err)
	}

	payload, err = stream.recv()
	if err != nil {
		return types.Certificate{}, fmt.Errorf("recv signature: %w", err)
	}
	peerSig, err := unpackSignature(payload)
	if err != nil {
		return types.Certificate{}, err
	}

	// 用本方保留的随机数验证对端签名
	if err := peerSig.Cert.Verify(challenge.Nonce[:]); err != nil {
		return types.Certificate{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	return peerSig.Cert, nil
}

// ============================================================================
//                              发起方
// ============================================================================

// handshakeInitiator 以发起方身份执行完整握手
//
// 成功返回对端已验证的证书；对端以准入控制拒绝时返回 ErrRejected，
// 与协议失败是不同的结果。
func handshakeInitiator(stream *lockedStream, env handshakeEnv, typ types.SessionType) (types.Certificate, error) {
	requestType := types.RequestTypeForSession(typ)
	if requestType == types.V1RequestTypeUnknown {
		return types.Certificate{}, fmt.Errorf("%w: %s", ErrUnknownSessionType, typ)
	}

	negotiated, err := exchangeHello(stream, env.versions)
	if err != nil {
		return types.Certificate{}, err
	}
	if !negotiated.Contains(types.SessionVersionV1) {
		return types.Certificate{}, fmt.Errorf("%w: negotiated %s", ErrNoCommonVersion, negotiated)
	}

	peerCert, err := exchangeChallenge(stream, env)
	if err != nil {
		return types.Certificate{}, err
	}

	if err := stream.send(&V1RequestMessage{RequestType: requestType}); err != nil {
		return types.Certificate{}, fmt.Errorf("send request: %w", err)
	}

	payload, err := stream.recv()
	if err != nil {
		return types.Certificate{}, fmt.Errorf("recv result: %w", err)
	}
	result, err := unpackResult(payload)
	if err != nil {
		return types.Certificate{}, err
	}
	if result.ResultType == types.V1ResultTypeReject {
		return types.Certificate{}, ErrRejected
	}

	return peerCert, nil
}

// ============================================================================
//                              响应方
// ============================================================================

// responderRequest 响应方读取到的会话请求
type responderRequest struct {
	typ  types.SessionType
	cert types.Certificate
}

// handshakeResponder 以响应方身份执行握手，至用途协商为止
//
// 准入判定（预留槽位、回复 Accept/Reject）由调用方完成，
// 见 SessionAccepter。
func handshakeResponder(stream *lockedStream, env handshakeEnv) (responderRequest, error) {
	negotiated, err := exchangeHello(stream, env.versions)
	if err != nil {
		return responderRequest{}, err
	}
	if !negotiated.Contains(types.SessionVersionV1) {
		return responderRequest{}, fmt.Errorf("%w: negotiated %s", ErrNoCommonVersion, negotiated)
	}

	peerCert, err := exchangeChallenge(stream, env)
	if err != nil {
		return responderRequest{}, err
	}

	payload, err := stream.recv()
	if err != nil {
		return responderRequest{}, fmt.Errorf("recv request: %w", err)
	}
	request, err := unpackRequest(payload)
	if err != nil {
		return responderRequest{}, err
	}

	typ := request.RequestType.SessionType()
	if typ == types.SessionTypeUnknown {
		return responderRequest{}, fmt.Errorf("%w: %d", ErrUnknownRequestType, uint32(request.RequestType))
	}

	return responderRequest{typ: typ, cert: peerCert}, nil
}
