package service

import (
	"time"

	"github.com/cydxin/read-receipt-sdk/models"
)

// ReadStateDTO 单条消息的已读状态
type ReadStateDTO struct {
	RoomID    uint64     `json:"room_id"`
	MessageID uint64     `json:"message_id"`
	SenderID  uint64     `json:"sender_id"`
	Status    uint8      `json:"status"` // 0发送中 1已发送 2已送达 3已读 4撤回
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

func NewReadStateDTO(msg *models.Message) *ReadStateDTO {
	return &ReadStateDTO{
		RoomID:    msg.RoomID,
		MessageID: msg.ID,
		SenderID:  msg.SenderID,
		Status:    msg.Status,
		IsRead:    msg.IsRead(),
		ReadAt:    msg.ReadAt,
	}
}
