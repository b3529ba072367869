package message

import "time"

// ReadNotice 推给消息发送者的“已读”通知
type ReadNotice struct {
	Type      string    `json:"type"` // message.read
	RoomID    uint64    `json:"room_id"`
	MessageID uint64    `json:"message_id"`
	ReaderID  uint64    `json:"reader_id"`
	ReadAt    time.Time `json:"read_at"`
}

// NewReadAck 根据请求构造确认帧
func NewReadAck(req *ReadReq, readAt *time.Time) *ReadAck {
	return &ReadAck{
		Type:      WsTypeReadAck,
		RoomID:    req.RoomID,
		MessageID: req.MessageID,
		Confirmed: true,
		PacketID:  req.PacketID,
		ReadAt:    readAt,
	}
}
