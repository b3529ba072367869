package service

import "errors"

// 错误分类：
// - ErrAuthentication 只出现在握手阶段，连接直接拒绝。
// - ErrMalformedRequest / ErrUnauthorizedConversation / ErrMessageNotFound / ErrStorage
//   只影响当前这一帧，连接保持。
// - ErrNotificationDelivery 只记日志，不回给客户端。
var (
	ErrAuthentication           = errors.New("authentication failed")
	ErrMalformedRequest         = errors.New("malformed request")
	ErrUnauthorizedConversation = errors.New("conversation not authorized")
	ErrMessageNotFound          = errors.New("message not found")
	ErrStorage                  = errors.New("storage error")
	ErrNotificationDelivery     = errors.New("notification delivery failed")
)
