package middleware

import (
	"net/http"

	"github.com/cydxin/read-receipt-sdk/response"
	"github.com/cydxin/read-receipt-sdk/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextUserIDKey gin context 里保存 user id 的 key
	ContextUserIDKey = "user_id"
	// ContextGrantKey gin context 里保存 *service.Grant 的 key
	ContextGrantKey = "grant"
)

// AuthOptions 可选配置。
type AuthOptions struct {
	// HeaderKey 默认 Authorization
	HeaderKey string
	// UserIDKey 默认 user_id
	UserIDKey string
	// GrantKey 默认 grant
	GrantKey string
}

func (o *AuthOptions) withDefaults() AuthOptions {
	if o == nil {
		return AuthOptions{HeaderKey: service.DefaultAuthHeader, UserIDKey: ContextUserIDKey, GrantKey: ContextGrantKey}
	}
	out := *o
	if out.HeaderKey == "" {
		out.HeaderKey = service.DefaultAuthHeader
	}
	if out.UserIDKey == "" {
		out.UserIDKey = ContextUserIDKey
	}
	if out.GrantKey == "" {
		out.GrantKey = ContextGrantKey
	}
	return out
}

/*
	GinAuthMiddleware Gin 鉴权中间件：

- 从 Authorization: Bearer <token>（或裸 token）读取
- 校验 token -> Grant（用户ID + 授权房间），成功后写入 gin.Context

使用：router.Use(middleware.GinAuthMiddleware(authService, nil))
*/
func GinAuthMiddleware(auth *service.AuthService, opt *AuthOptions) gin.HandlerFunc {
	cfg := opt.withDefaults()

	return func(c *gin.Context) {
		if auth == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(response.CodeInternalError, "auth service is nil"))
			return
		}

		token := service.ParseBearer(c.GetHeader(cfg.HeaderKey))
		grant, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, err.Error()))
			return
		}

		c.Set(cfg.UserIDKey, grant.UserID)
		c.Set(cfg.GrantKey, grant)
		c.Next()
	}
}

// GrantFrom 取出中间件写入的授权信息（默认 key）
func GrantFrom(c *gin.Context) (*service.Grant, bool) {
	v, ok := c.Get(ContextGrantKey)
	if !ok {
		return nil, false
	}
	g, ok := v.(*service.Grant)
	return g, ok && g != nil
}
