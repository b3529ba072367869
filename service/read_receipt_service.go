package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/cydxin/read-receipt-sdk/models"
	"github.com/cydxin/read-receipt-sdk/repository"
)

// ReadReceiptService 处理单条消息的已读回执：
// 校验房间授权 -> 查消息 -> 原子标记已读 -> 通知发送者（尽力而为）。
// 解码请求与回写确认由连接层负责。
type ReadReceiptService struct {
	*Service

	now func() time.Time
}

func NewReadReceiptService(s *Service) *ReadReceiptService {
	return &ReadReceiptService{Service: s, now: time.Now}
}

// ReadResult 已读处理结果。Changed=false 表示消息此前已是终态（已读/撤回），本次为空操作。
type ReadResult struct {
	Message *models.Message
	Changed bool
}

// MarkRead 标记 roomID 下的 messageID 为已读。
// 授权失败时不会访问存储，也不会发通知。
func (s *ReadReceiptService) MarkRead(ctx context.Context, grant *Grant, roomID, messageID uint64) (*ReadResult, error) {
	msg, err := s.resolve(ctx, grant, roomID, messageID)
	if err != nil {
		return nil, err
	}

	changed, err := repository.NewMessageDAO(s.DB.WithContext(ctx)).MarkRead(msg, s.now())
	if err != nil {
		return nil, classifyStoreErr(err, messageID)
	}

	// 只有真正发生状态迁移的那一次才通知，自己读自己的消息不通知
	if changed && msg.SenderID != grant.UserID {
		s.notify(ctx, msg, grant.UserID)
	}
	return &ReadResult{Message: msg, Changed: changed}, nil
}

// GetReadState 查询授权房间内某条消息的当前已读状态
func (s *ReadReceiptService) GetReadState(ctx context.Context, grant *Grant, roomID, messageID uint64) (*models.Message, error) {
	return s.resolve(ctx, grant, roomID, messageID)
}

func (s *ReadReceiptService) resolve(ctx context.Context, grant *Grant, roomID, messageID uint64) (*models.Message, error) {
	if roomID == 0 || messageID == 0 {
		return nil, fmt.Errorf("%w: room_id and message_id are required", ErrMalformedRequest)
	}
	if !grant.Allows(roomID) {
		return nil, fmt.Errorf("%w: room %d", ErrUnauthorizedConversation, roomID)
	}
	if s.DB == nil {
		return nil, fmt.Errorf("%w: db is nil", ErrStorage)
	}

	msg, err := repository.NewMessageDAO(s.DB.WithContext(ctx)).FindInRoom(roomID, messageID)
	if err != nil {
		return nil, classifyStoreErr(err, messageID)
	}
	return msg, nil
}

func (s *ReadReceiptService) notify(ctx context.Context, msg *models.Message, readerID uint64) {
	if s.Notify == nil {
		return
	}
	if err := s.Notify.NotifyRead(ctx, msg, readerID); err != nil {
		log.Printf("ReadReceiptService.notify room=%d msg=%d sender=%d reader=%d: %v",
			msg.RoomID, msg.ID, msg.SenderID, readerID, err)
	}
}

func classifyStoreErr(err error, messageID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: message %d", ErrMessageNotFound, messageID)
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
