package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cydxin/read-receipt-sdk/cons"
)

const (
	// 默认 token 过期时间
	defaultTokenTTL = 7 * 24 * time.Hour
)

// TokenClaims 握手 token 的载荷：sub=用户ID，jti=token ID，room_ids=允许操作的房间集合。
type TokenClaims struct {
	RoomIDs []uint64 `json:"room_ids,omitempty"`
	jwt.RegisteredClaims
}

// Grant 校验通过后的授权信息，创建后不再修改，可被同一连接的每一帧并发只读。
type Grant struct {
	UserID    uint64
	TokenID   string
	ExpiresAt time.Time

	rooms map[uint64]struct{}
}

// NewGrant 创建授权信息；roomIDs 为空表示“已认证但不允许操作任何房间”。
func NewGrant(userID uint64, tokenID string, expiresAt time.Time, roomIDs []uint64) *Grant {
	rooms := make(map[uint64]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		if id == 0 {
			continue
		}
		rooms[id] = struct{}{}
	}
	return &Grant{UserID: userID, TokenID: tokenID, ExpiresAt: expiresAt, rooms: rooms}
}

// Allows 判断房间是否在授权集合内
func (g *Grant) Allows(roomID uint64) bool {
	if g == nil {
		return false
	}
	_, ok := g.rooms[roomID]
	return ok
}

// RoomIDs 返回授权房间的有序副本
func (g *Grant) RoomIDs() []uint64 {
	if g == nil {
		return nil
	}
	out := make([]uint64, 0, len(g.rooms))
	for id := range g.rooms {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TokenService 负责握手 token 的签发、校验与注销。
// token 本身是 HS256 JWT，房间集合写在 claims 里；
// 注销通过 Redis 黑名单实现：im:token_revoked:{jti} -> 1 (TTL)。
type TokenService struct {
	rdb    *redis.Client
	secret []byte
	issuer string

	now func() time.Time
}

func NewTokenService(rdb *redis.Client, secret []byte, issuer string) *TokenService {
	return &TokenService{rdb: rdb, secret: secret, issuer: issuer, now: time.Now}
}

func (s *TokenService) revokedKey(tokenID string) string {
	return cons.RedisTokenRevokedPrefix + tokenID
}

// IssueToken 签发 token。ttl<=0 时使用默认过期时间。
func (s *TokenService) IssueToken(userID uint64, roomIDs []uint64, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("token secret is empty")
	}
	if userID == 0 {
		return "", fmt.Errorf("user_id is required")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := s.now()
	claims := TokenClaims{
		RoomIDs: roomIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken 校验签名/过期/签发方/黑名单，成功返回授权信息。
// 所有失败都包装为 ErrAuthentication。
func (s *TokenService) VerifyToken(ctx context.Context, token string) (*Grant, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("%w: token secret is empty", ErrAuthentication)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &TokenClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || uid == 0 {
		return nil, fmt.Errorf("%w: invalid subject %q", ErrAuthentication, claims.Subject)
	}

	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: revocation check: %w", ErrAuthentication, err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", ErrAuthentication)
	}

	return NewGrant(uid, claims.ID, claims.ExpiresAt.Time, claims.RoomIDs), nil
}

// RevokeToken 注销 token（写入黑名单）。ttl 应不小于 token 剩余有效期。
func (s *TokenService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s.rdb == nil {
		return fmt.Errorf("redis client is nil")
	}
	if tokenID == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return s.rdb.Set(ctx, s.revokedKey(tokenID), "1", ttl).Err()
}

// 未配置 Redis 时不做黑名单校验
func (s *TokenService) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.rdb == nil || tokenID == "" {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, s.revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
