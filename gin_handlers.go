package receipt_sdk

/* @title           Read Receipt SDK API
@version         1.0
@description     Read Receipt SDK API documentation
@host            localhost:6789
@BasePath        /api/v1
@securityDefinitions.apikey BearerAuth
@in header
@name Authorization
*/

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册默认路由：
//
//	GET  /ws                        (握手自带鉴权)
//	POST {prefix}/message/read
//	GET  {prefix}/message/read_state
//
// prefix 为空时使用 /api/v1。也可以不用这里，自己写 controller 调用 ReadReceipt。
func (c *ChatEngine) RegisterRoutes(r gin.IRouter, prefix string) {
	if prefix == "" {
		prefix = "/api/v1"
	}
	r.GET("/ws", c.GinHandleWS)

	api := r.Group(prefix, c.GinAuthMiddleware(nil))
	messageAPI := api.Group("/message")
	{
		messageAPI.POST("/read", c.GinHandleMarkRead)
		messageAPI.GET("/read_state", c.GinHandleGetReadState)
	}
}
