package session

import "errors"

var (
	// ErrNoCommonVersion 双方版本位集交集为空
	ErrNoCommonVersion = errors.New("session: no common protocol version")

	// ErrAuthenticationFailed 对端签名验证失败
	ErrAuthenticationFailed = errors.New("session: authentication failed")

	// ErrUnknownRequestType 未知的会话请求类型
	ErrUnknownRequestType = errors.New("session: unknown request type")

	// ErrUnknownSessionType 请求了未配置的会话用途（配置/编程错误）
	ErrUnknownSessionType = errors.New("session: unknown session type")

	// ErrRejected 对端以准入控制拒绝了会话（非错误结果）
	ErrRejected = errors.New("session: rejected by peer")

	// ErrAccepterClosed 接入端已终止
	ErrAccepterClosed = errors.New("session: accepter closed")

	// ErrInvalidMessage 消息形状非法
	ErrInvalidMessage = errors.New("session: invalid message")

	// ErrFrameTooLarge 帧超过长度上限
	ErrFrameTooLarge = errors.New("session: frame too large")

	// ErrInvalidConfig 无效的配置
	ErrInvalidConfig = errors.New("session: invalid config")
)
