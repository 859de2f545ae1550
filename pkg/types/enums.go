package types

// ============================================================================
//                              SessionType - 会话用途
// ============================================================================

// SessionType 会话用途
//
// 决定会话由哪个上层组件消费，以及接入端将会话路由到哪个队列。
type SessionType int

const (
	// SessionTypeUnknown 未知会话用途
	SessionTypeUnknown SessionType = iota
	// SessionTypeNodeFinder 节点发现会话
	SessionTypeNodeFinder
)

// String 返回会话用途的字符串表示
func (t SessionType) String() string {
	switch t {
	case SessionTypeNodeFinder:
		return "node_finder"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              SessionHandshakeType - 握手角色
// ============================================================================

// SessionHandshakeType 握手角色
//
// 标记本节点在握手中是发起方还是响应方，会话建立后不可变。
type SessionHandshakeType int

const (
	// HandshakeTypeUnknown 未知角色
	HandshakeTypeUnknown SessionHandshakeType = iota
	// HandshakeTypeConnected 本节点为发起方
	HandshakeTypeConnected
	// HandshakeTypeAccepted 本节点为响应方
	HandshakeTypeAccepted
)

// String 返回握手角色的字符串表示
func (t SessionHandshakeType) String() string {
	switch t {
	case HandshakeTypeConnected:
		return "connected"
	case HandshakeTypeAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              V1RequestType - 会话请求类型
// ============================================================================

// V1RequestType 协议 V1 的会话请求类型
//
// 发起方在握手的用途协商阶段发送，数值在线路上固定。
type V1RequestType uint32

const (
	// V1RequestTypeUnknown 未知请求类型
	V1RequestTypeUnknown V1RequestType = 0
	// V1RequestTypeNodeExchanger 节点交换会话请求
	V1RequestTypeNodeExchanger V1RequestType = 1
)

// SessionType 返回请求类型对应的会话用途
func (t V1RequestType) SessionType() SessionType {
	switch t {
	case V1RequestTypeNodeExchanger:
		return SessionTypeNodeFinder
	default:
		return SessionTypeUnknown
	}
}

// String 返回请求类型的字符串表示
func (t V1RequestType) String() string {
	switch t {
	case V1RequestTypeNodeExchanger:
		return "node_exchanger"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              V1ResultType - 会话请求结果
// ============================================================================

// V1ResultType 协议 V1 的会话请求结果
//
// 响应方在准入判定后回复，数值在线路上固定。
type V1ResultType uint32

const (
	// V1ResultTypeUnknown 未知结果
	V1ResultTypeUnknown V1ResultType = 0
	// V1ResultTypeAccept 接受会话
	V1ResultTypeAccept V1ResultType = 1
	// V1ResultTypeReject 拒绝会话（准入控制，非错误）
	V1ResultTypeReject V1ResultType = 2
)

// String 返回结果的字符串表示
func (t V1ResultType) String() string {
	switch t {
	case V1ResultTypeAccept:
		return "accept"
	case V1ResultTypeReject:
		return "reject"
	default:
		return "unknown"
	}
}

// RequestTypeForSession 返回会话用途对应的请求类型
func RequestTypeForSession(t SessionType) V1RequestType {
	switch t {
	case SessionTypeNodeFinder:
		return V1RequestTypeNodeExchanger
	default:
		return V1RequestTypeUnknown
	}
}
