package repository

import (
	"time"

	"github.com/cydxin/read-receipt-sdk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageDAO 封装 Message 相关的数据库操作
//
// 约定：
// - 只做“数据访问”，不做权限校验与通知编排。
// - MarkRead 自带事务；其余方法如需在外部事务中执行，请使用 WithDB(tx)。
type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{db: db}
}

// WithDB 用于在事务（tx）中复用 DAO
func (dao *MessageDAO) WithDB(db *gorm.DB) *MessageDAO {
	if db == nil {
		return dao
	}
	return &MessageDAO{db: db}
}

// FindByID 根据ID查找消息
func (dao *MessageDAO) FindByID(id uint64) (*models.Message, error) {
	var msg models.Message
	if err := dao.db.Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// FindInRoom 查找属于指定房间的消息；消息不存在或不在该房间时返回 gorm.ErrRecordNotFound。
func (dao *MessageDAO) FindInRoom(roomID, messageID uint64) (*models.Message, error) {
	var msg models.Message
	if err := dao.db.Where("id = ? AND room_id = ?", messageID, roomID).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead 将消息标记为已读。
// 行锁 + 条件更新：并发调用同一条消息时只有一个调用返回 changed=true，
// 已读/撤回的消息保持不变且不报错。成功后 msg 会被刷新为库中最新状态。
func (dao *MessageDAO) MarkRead(msg *models.Message, now time.Time) (bool, error) {
	changed := false
	err := dao.db.Transaction(func(tx *gorm.DB) error {
		var locked models.Message
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND room_id = ?", msg.ID, msg.RoomID).
			First(&locked).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Message{}).
			Where("id = ? AND status IN ?", locked.ID, models.UnreadStatuses).
			Updates(map[string]any{
				"status":  models.MessageStatusRead,
				"read_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			changed = true
			locked.Status = models.MessageStatusRead
			locked.ReadAt = &now
		}
		*msg = locked
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}
