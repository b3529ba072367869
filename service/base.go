package service

import (
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Service 基础服务，包含数据库和配置
type Service struct {
	DB  *gorm.DB
	RDB *redis.Client

	// Notify 已读通知分发（WS/Redis/NATS，尽力而为）
	// 避免循环依赖，通过接口注入的方式
	Notify ReadNotifier

	// Debug 为 true 时错误帧会带上底层错误信息
	Debug bool
}
