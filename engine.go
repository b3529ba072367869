package receipt_sdk

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cydxin/read-receipt-sdk/middleware"
	"github.com/cydxin/read-receipt-sdk/service"
)

type ChatEngine struct {
	config *Config

	AuthService *service.AuthService // 鉴权服务
	ReadReceipt *service.ReadReceiptService
	WsServer    *WsServer

	cancel context.CancelFunc
}

// NewEngine 创建实例
// 使用选项模式传入配置，Option回调。
// 每次调用都是独立实例，不同实例之间不共享连接或会话。
func NewEngine(opts ...Option) (*ChatEngine, error) {
	c := &Config{
		HandshakeTimeout: defaultHandshakeTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.DB == nil {
		return nil, errors.New("receipt_sdk: DB is required")
	}
	if len(c.Token.Secret) == 0 {
		return nil, errors.New("receipt_sdk: token secret is required")
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = defaultHandshakeTimeout
	}

	e := &ChatEngine{config: c}
	e.AuthService = service.NewAuthService(c.RDB, c.Token.Secret, c.Token.Issuer).WithHeaderKey(c.Token.HeaderKey)

	// 初始化 WS
	e.WsServer = NewWsServer(&receiptHandler{engine: e})
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	go e.WsServer.Run(ctx)

	// 初始化基础 Service，注入通知出口
	baseService := &service.Service{
		DB:     c.DB,
		RDB:    c.RDB,
		Notify: e.buildNotifier(),
		Debug:  c.Service.Debug,
	}
	e.ReadReceipt = service.NewReadReceiptService(baseService)

	// 迁移表
	if err := e.AutoMigrate(); err != nil {
		log.Printf("AutoMigrate failed: %v", err)
	}
	return e, nil
}

// buildNotifier 在线连接推送总是开启，Redis/NATS 按配置追加
func (c *ChatEngine) buildNotifier() service.ReadNotifier {
	notifiers := service.MultiReadNotifier{service.NewWsReadNotifier(c.WsServer.SendToUser)}
	if c.config.RDB != nil {
		notifiers = append(notifiers, service.NewRedisReadNotifier(c.config.RDB))
	}
	if c.config.Nats.Conn != nil {
		notifiers = append(notifiers, service.NewNatsReadNotifier(c.config.Nats.Conn, c.config.Nats.SubjectPrefix))
	}
	return append(notifiers, c.config.Notifiers...)
}

// Close 停止 hub 并断开所有连接
func (c *ChatEngine) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// ServeWS 处理 WebSocket 请求，握手时从请求头读取凭证
func (c *ChatEngine) ServeWS(w http.ResponseWriter, r *http.Request) {
	c.WsServer.ServeWS(w, r)
}

// GinAuthMiddleware 返回配置好的 Gin 鉴权中间件
// 使用 ChatEngine 内部的 AuthService
//
// 使用示例:
//
//	engine, _ := receipt_sdk.NewEngine(...)
//	r := gin.Default()
//	r.Use(engine.GinAuthMiddleware(nil)) // 使用默认配置
func (c *ChatEngine) GinAuthMiddleware(opt *middleware.AuthOptions) gin.HandlerFunc {
	if opt == nil && c.config.Token.HeaderKey != "" {
		opt = &middleware.AuthOptions{HeaderKey: c.config.Token.HeaderKey}
	}
	return middleware.GinAuthMiddleware(c.AuthService, opt)
}
