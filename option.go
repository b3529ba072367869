package receipt_sdk

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"
	"gorm.io/gorm"

	"github.com/cydxin/read-receipt-sdk/service"
)

const defaultHandshakeTimeout = 5 * time.Second

type ServiceConfig struct {
	Debug bool
}

// TokenConfig 连接凭证配置
type TokenConfig struct {
	Secret []byte
	Issuer string
	// HeaderKey 握手时读取凭证的 header，默认 Authorization
	HeaderKey string
}

// NatsConfig 已读通知同时发布到 NATS（可选）
type NatsConfig struct {
	Conn *nats.Conn
	// SubjectPrefix 默认 im.read，最终 subject 为 {prefix}.{sender_id}
	SubjectPrefix string
}

type Config struct {
	DB      *gorm.DB
	RDB     *redis.Client
	Nats    NatsConfig
	Token   TokenConfig
	Service ServiceConfig

	// HandshakeTimeout 握手鉴权的超时时间
	HandshakeTimeout time.Duration

	// Notifiers 额外的已读通知出口
	Notifiers []service.ReadNotifier
}

type Option func(*Config)

func WithDB(db *gorm.DB) Option {
	return func(c *Config) {
		c.DB = db
	}
}

// WithRDB 配置后启用 token 吊销检查和 Redis 已读通知
func WithRDB(RDB *redis.Client) Option {
	return func(c *Config) {
		c.RDB = RDB
	}
}

func WithNats(nc *nats.Conn, subjectPrefix string) Option {
	return func(c *Config) {
		c.Nats = NatsConfig{Conn: nc, SubjectPrefix: subjectPrefix}
	}
}

func WithTokenSecret(secret []byte) Option {
	return func(c *Config) {
		c.Token.Secret = secret
	}
}

func WithTokenIssuer(issuer string) Option {
	return func(c *Config) {
		c.Token.Issuer = issuer
	}
}

func WithAuthHeader(key string) Option {
	return func(c *Config) {
		c.Token.HeaderKey = key
	}
}

func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.HandshakeTimeout = d
	}
}

// WithNotifier 追加已读通知出口，例如业务自己的推送服务
func WithNotifier(n ...service.ReadNotifier) Option {
	return func(c *Config) {
		c.Notifiers = append(c.Notifiers, n...)
	}
}

func WithServiceDebug(debug bool) Option {
	return func(c *Config) {
		c.Service.Debug = debug
	}
}
