package message

import (
	"time"

	"github.com/cydxin/read-receipt-sdk/cons"
)

// WS 消息类型
const (
	WsTypeRead    = "read"                // 已读回执（client -> server）
	WsTypeReadAck = "read_ack"            // 已读确认（server -> client）
	WsTypeError   = "error"               // 单帧处理失败（server -> client）
	WsTypeNotice  = cons.EventMessageRead // 消息被读通知（server -> 发送者）
)

// ReadReq 已读回执：表示当前用户已读某房间内的某条消息。
// type 可以省略（该连接只处理已读回执）。
type ReadReq struct {
	Type      string `json:"type"`                          // read
	RoomID    uint64 `json:"room_id" binding:"required"`    // 房间 ID
	MessageID uint64 `json:"message_id" binding:"required"` // 消息 ID
	PacketID  string `json:"packet_id" binding:"max=64"`    // 可选：客户端匹配 ack，最长 64
}

// ReadAck 已读确认，原样回带 room_id/message_id/packet_id
type ReadAck struct {
	Type      string     `json:"type"`
	RoomID    uint64     `json:"room_id"`
	MessageID uint64     `json:"message_id"`
	Confirmed bool       `json:"confirmed"`
	PacketID  string     `json:"packet_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// ErrorFrame 单帧错误回复，连接不会因此关闭
type ErrorFrame struct {
	Type      string `json:"type"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RoomID    uint64 `json:"room_id,omitempty"`
	MessageID uint64 `json:"message_id,omitempty"`
	PacketID  string `json:"packet_id,omitempty"`
}
