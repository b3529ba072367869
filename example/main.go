package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	receipt_sdk "github.com/cydxin/read-receipt-sdk"
)

// 环境变量：
//
//	RECEIPT_DSN           mysql DSN，为空时使用本地 sqlite 文件 receipt.db
//	RECEIPT_REDIS_ADDR    可选，开启 token 吊销和 Redis 已读通知
//	RECEIPT_NATS_URL      可选，已读通知同时发布到 NATS
//	RECEIPT_TOKEN_SECRET  必填，HS256 签名密钥
//	RECEIPT_ADDR          监听地址，默认 :6789
//	RECEIPT_PUBLIC_HOST   可选，Swagger 文档里的 host
//	RECEIPT_DEBUG         true 时错误帧带底层错误
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("未加载 .env: %v", err)
	}

	// 1. 初始化数据库连接
	var dialector gorm.Dialector
	if dsn := os.Getenv("RECEIPT_DSN"); dsn != "" {
		dialector = mysql.Open(dsn)
	} else {
		dialector = sqlite.Open("receipt.db")
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal("数据库连接失败:", err)
	}

	opts := []receipt_sdk.Option{
		receipt_sdk.WithDB(db),
		receipt_sdk.WithTokenSecret([]byte(os.Getenv("RECEIPT_TOKEN_SECRET"))),
		receipt_sdk.WithTokenIssuer("read-receipt-sdk"),
		receipt_sdk.WithHandshakeTimeout(5 * time.Second),
	}
	if debug, _ := strconv.ParseBool(os.Getenv("RECEIPT_DEBUG")); debug {
		opts = append(opts, receipt_sdk.WithServiceDebug(true))
	}

	// 2. 可选：Redis（吊销 + Pub/Sub 通知）
	if addr := os.Getenv("RECEIPT_REDIS_ADDR"); addr != "" {
		opts = append(opts, receipt_sdk.WithRDB(redis.NewClient(&redis.Options{Addr: addr})))
	}

	// 3. 可选：NATS
	if url := os.Getenv("RECEIPT_NATS_URL"); url != "" {
		nc, err := nats.Connect(url)
		if err != nil {
			log.Fatal("NATS 连接失败:", err)
		}
		defer nc.Close()
		opts = append(opts, receipt_sdk.WithNats(nc, ""))
	}

	engine, err := receipt_sdk.NewEngine(opts...)
	if err != nil {
		log.Fatal("初始化失败:", err)
	}
	defer engine.Close()

	// 4. 创建 Gin 路由
	r := gin.Default()

	// 设置 CORS（如果需要）
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 注册 Swagger UI
	receipt_sdk.RegisterSwagger(r, "", os.Getenv("RECEIPT_PUBLIC_HOST"))

	// 5. WebSocket + API 路由
	engine.RegisterRoutes(r, "/api/v1")

	addr := os.Getenv("RECEIPT_ADDR")
	if addr == "" {
		addr = ":6789"
	}
	log.Printf("Read Receipt Server 启动在 %s", addr)
	log.Printf("Swagger UI: http://localhost%s/swagger/index.html", addr)
	log.Printf("WebSocket 地址: ws://localhost%s/ws （Authorization: Bearer <token>）", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("服务器启动失败:", err)
	}
}
