package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultAuthHeader 握手时携带 token 的请求头
const DefaultAuthHeader = "Authorization"

// AuthService 提供“鉴权核心能力”，供 WS 握手与 HTTP 中间件共用。
// - 从请求头提取 token（Bearer 前缀可选）
// - 校验 token -> Grant（用户ID + 房间集合）
// - 注销 token
type AuthService struct {
	token     *TokenService
	headerKey string
}

func NewAuthService(rdb *redis.Client, secret []byte, issuer string) *AuthService {
	return &AuthService{token: NewTokenService(rdb, secret, issuer), headerKey: DefaultAuthHeader}
}

// WithHeaderKey 返回使用自定义请求头的副本
func (a *AuthService) WithHeaderKey(key string) *AuthService {
	if key == "" {
		return a
	}
	cp := *a
	cp.headerKey = key
	return &cp
}

// Tokens 暴露底层 TokenService（签发/注销）
func (a *AuthService) Tokens() *TokenService {
	return a.token
}

// ExtractToken 从 HTTP 请求头中提取 token：支持 "Bearer <token>" 与裸 token。
func (a *AuthService) ExtractToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ParseBearer(r.Header.Get(a.headerKey))
}

// ParseBearer 去掉可选的 Bearer 前缀
func ParseBearer(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	parts := strings.SplitN(v, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return v
}

// Authenticate 校验 token 并返回授权信息。
func (a *AuthService) Authenticate(ctx context.Context, token string) (*Grant, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrAuthentication)
	}
	return a.token.VerifyToken(ctx, token)
}

// AuthenticateRequest 从请求里抽 token 并鉴权。
func (a *AuthService) AuthenticateRequest(ctx context.Context, r *http.Request) (*Grant, error) {
	return a.Authenticate(ctx, a.ExtractToken(r))
}

// RevokeToken 注销单个 token（按 jti）。
func (a *AuthService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return a.token.RevokeToken(ctx, tokenID, ttl)
}
