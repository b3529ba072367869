package receipt_sdk

import (
	"log"

	"github.com/cydxin/read-receipt-sdk/models"
)

// AutoMigrate 建表/补字段，只处理消息表
func (c *ChatEngine) AutoMigrate() error {
	log.Println("AutoMigrate...")
	return c.config.DB.AutoMigrate(&models.Message{})
}
