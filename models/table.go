package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	prefix = "im_"
)

// Message 消息表
// 已读状态只向前推进：发送中/已发送/已送达 -> 已读，撤回后不再变化。
type Message struct {
	ID        uint64         `gorm:"primarykey"`
	RoomID    uint64         `gorm:"index:idx_room_msg,priority:1;not null"` // 房间(会话) ID
	SenderID  uint64         `gorm:"index;not null"`                         // 发送者 ID
	Type      uint8          `gorm:"type:tinyint;default:1"`                 // 消息类型: 1-文本 2-图片 3-语音 4-视频 5-文件 6-位置
	Content   string         `gorm:"type:text;not null"`                     // 消息内容
	Extra     datatypes.JSON `gorm:"column:extra;type:json"`
	Status    uint8          `gorm:"type:tinyint;default:0;index"` // 状态: 0-发送中 1-已发送 2-已送达 3-已读 4-撤回
	ReadAt    *time.Time     // 已读时间（首次标记已读时写入）
	CreatedAt time.Time      `gorm:"index:idx_room_msg,priority:2"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Message) TableName() string {
	return prefix + "message"
}

const (
	MessageStatusSending   = 0 //发送中
	MessageStatusSent      = 1 //已发送
	MessageStatusDelivered = 2 //已送达
	MessageStatusRead      = 3 //已读
	MessageStatusRecalled  = 4 //撤回
)

// UnreadStatuses 可被标记为已读的状态集合（用 []int 而非 []uint8，避免被当作 []byte 绑定）
var UnreadStatuses = []int{MessageStatusSending, MessageStatusSent, MessageStatusDelivered}

// IsRead 是否已读
func (m *Message) IsRead() bool {
	return m != nil && m.Status == MessageStatusRead
}
