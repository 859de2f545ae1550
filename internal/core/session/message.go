package session

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/multiformats/go-varint"

	"github.com/ambernet/go-amber/pkg/types"
)

// 线路常量
const (
	// NonceSize 挑战随机数长度（字节）
	NonceSize = 32

	// maxFrameSize 单帧长度上限
	maxFrameSize = 64 * 1024
)

// ============================================================================
//                              消息定义
// ============================================================================
//
// 所有消息经 varint 长度前缀成帧，载荷内字段顺序固定：
//
//	Hello        version      u32 大端
//	V1Challenge  nonce        32 字节
//	V1Signature  pubkey_len   uvarint
//	             pubkey       -
//	             sig_len      uvarint
//	             sig          -
//	V1Request    request_type u32 大端
//	V1Result     result_type  u32 大端

// HelloMessage 版本协商消息
type HelloMessage struct {
	Version types.SessionVersion
}

// V1ChallengeMessage 挑战消息
type V1ChallengeMessage struct {
	Nonce [NonceSize]byte
}

// V1SignatureMessage 签名消息
//
// 证书是对「对端挑战随机数」的签名及签名方公钥。
type V1SignatureMessage struct {
	Cert types.Certificate
}

// V1RequestMessage 会话请求消息（发起方 → 响应方）
type V1RequestMessage struct {
	RequestType types.V1RequestType
}

// V1ResultMessage 会话结果消息（响应方 → 发起方）
type V1ResultMessage struct {
	ResultType types.V1ResultType
}

// ============================================================================
//                              编码
// ============================================================================

func (m *HelloMessage) pack(buf *bytes.Buffer) error {
	return binary.Write(buf, binary.BigEndian, m.Version.Bits())
}

func (m *V1ChallengeMessage) pack(buf *bytes.Buffer) error {
	_, err := buf.Write(m.Nonce[:])
	return err
}

func (m *V1SignatureMessage) pack(buf *bytes.Buffer) error {
	if err := packBytes(buf, m.Cert.PublicKey); err != nil {
		return err
	}
	return packBytes(buf, m.Cert.Signature)
}

func (m *V1RequestMessage) pack(buf *bytes.Buffer) error {
	return binary.Write(buf, binary.BigEndian, uint32(m.RequestType))
}

func (m *V1ResultMessage) pack(buf *bytes.Buffer) error {
	return binary.Write(buf, binary.BigEndian, uint32(m.ResultType))
}

// packBytes 写入 uvarint 长度前缀的字节串
func packBytes(buf *bytes.Buffer, b []byte) error {
	lenBuf := make([]byte, varint.UvarintSize(uint64(len(b))))
	varint.PutUvarint(lenBuf, uint64(len(b)))
	if _, err := buf.Write(lenBuf); err != nil {
		return err
	}
	_, err := buf.Write(b)
	return err
}

// ============================================================================
//                              解码
// ============================================================================

func unpackHello(payload []byte) (*HelloMessage, error) {
	if len(payload) != 4 {
		return nil, fmt.Errorf("%w: hello payload length %d", ErrInvalidMessage, len(payload))
	}
	return &HelloMessage{
		Version: types.SessionVersionFromBits(binary.BigEndian.Uint32(payload)),
	}, nil
}

func unpackChallenge(payload []byte) (*V1ChallengeMessage, error) {
	if len(payload) != NonceSize {
		return nil, fmt.Errorf("%w: nonce length %d", ErrInvalidMessage, len(payload))
	}
	var m V1ChallengeMessage
	copy(m.Nonce[:], payload)
	return &m, nil
}

func unpackSignature(payload []byte) (*V1SignatureMessage, error) {
	r := bytes.NewReader(payload)

	pub, err := unpackBytes(r)
	if err != nil {
		return nil, fmt.Errorf("%w: signature pubkey: %v", ErrInvalidMessage, err)
	}
	sig, err := unpackBytes(r)
	if err != nil {
		return nil, fmt.Errorf("%w: signature blob: %v", ErrInvalidMessage, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: trailing bytes in signature message", ErrInvalidMessage)
	}

	return &V1SignatureMessage{Cert: types.Certificate{PublicKey: pub, Signature: sig}}, nil
}

func unpackRequest(payload []byte) (*V1RequestMessage, error) {
	if len(payload) != 4 {
		return nil, fmt.Errorf("%w: request payload length %d", ErrInvalidMessage, len(payload))
	}
	return &V1RequestMessage{
		RequestType: types.V1RequestType(binary.BigEndian.Uint32(payload)),
	}, nil
}

func unpackResult(payload []byte) (*V1ResultMessage, error) {
	if len(payload) != 4 {
		return nil, fmt.Errorf("%w: result payload length %d", ErrInvalidMessage, len(payload))
	}
	m := &V1ResultMessage{
		ResultType: types.V1ResultType(binary.BigEndian.Uint32(payload)),
	}
	if m.ResultType != types.V1ResultTypeAccept && m.ResultType != types.V1ResultTypeReject {
		return nil, fmt.Errorf("%w: result type %d", ErrInvalidMessage, uint32(m.ResultType))
	}
	return m, nil
}

// unpackBytes 读取 uvarint 长度前缀的字节串
func unpackBytes(r *bytes.Reader) ([]byte, error) {
	n, err := varint.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	if n > maxFrameSize {
		return nil, ErrFrameTooLarge
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ============================================================================
//                              成帧
// ============================================================================

// packable 可编码到载荷缓冲区的消息
type packable interface {
	pack(buf *bytes.Buffer) error
}

// writeFrame 编码消息并写入带 varint 长度前缀的帧
func writeFrame(w io.Writer, m packable) error {
	var payload bytes.Buffer
	if err := m.pack(&payload); err != nil {
		return err
	}

	lenBuf := make([]byte, varint.UvarintSize(uint64(payload.Len())))
	varint.PutUvarint(lenBuf, uint64(payload.Len()))

	if _, err := w.Write(lenBuf); err != nil {
		return err
	}
	_, err := w.Write(payload.Bytes())
	return err
}

// readFrame 读取一帧的载荷
func readFrame(r io.Reader) ([]byte, error) {
	n, err := varint.ReadUvarint(byteReader{r})
	if err != nil {
		return nil, err
	}
	if n > maxFrameSize {
		return nil, ErrFrameTooLarge
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// byteReader 把 io.Reader 适配为 io.ByteReader，供 varint 解码使用
type byteReader struct {
	r io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
