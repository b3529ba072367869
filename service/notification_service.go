package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cydxin/read-receipt-sdk/cons"
	"github.com/cydxin/read-receipt-sdk/message"
	"github.com/cydxin/read-receipt-sdk/models"
	"github.com/go-redis/redis/v8"
)

// ReadNotifier 已读通知分发：告诉消息发送者“你的消息已被读”。
// 约定：尽力而为，允许重复投递；失败由调用方记录日志，不影响已读回执本身。
type ReadNotifier interface {
	NotifyRead(ctx context.Context, msg *models.Message, readerID uint64) error
}

func encodeReadNotice(msg *models.Message, readerID uint64) ([]byte, error) {
	readAt := time.Now()
	if msg.ReadAt != nil {
		readAt = *msg.ReadAt
	}
	return json.Marshal(message.ReadNotice{
		Type:      message.WsTypeNotice,
		RoomID:    msg.RoomID,
		MessageID: msg.ID,
		ReaderID:  readerID,
		ReadAt:    readAt,
	})
}

// WsReadNotifier 通过 WsServer 推给发送者当前所有在线连接
type WsReadNotifier struct {
	send func(userID uint64, message []byte) int
}

func NewWsReadNotifier(send func(userID uint64, message []byte) int) *WsReadNotifier {
	return &WsReadNotifier{send: send}
}

func (n *WsReadNotifier) NotifyRead(_ context.Context, msg *models.Message, readerID uint64) error {
	if n == nil || n.send == nil {
		return fmt.Errorf("%w: ws notifier is nil", ErrNotificationDelivery)
	}
	b, err := encodeReadNotice(msg, readerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotificationDelivery, err)
	}
	if delivered := n.send(msg.SenderID, b); delivered == 0 {
		return fmt.Errorf("%w: user %d has no live connection", ErrNotificationDelivery, msg.SenderID)
	}
	return nil
}

// RedisReadNotifier 通过 Redis Pub/Sub 发布：PUBLISH im:read:{senderID} <notice>
// 供其它节点/推送网关订阅。
type RedisReadNotifier struct {
	rdb *redis.Client
}

func NewRedisReadNotifier(rdb *redis.Client) *RedisReadNotifier {
	return &RedisReadNotifier{rdb: rdb}
}

// RedisReadChannel 发送者对应的频道名
func RedisReadChannel(senderID uint64) string {
	return cons.RedisReadChannelPrefix + strconv.FormatUint(senderID, 10)
}

func (n *RedisReadNotifier) NotifyRead(ctx context.Context, msg *models.Message, readerID uint64) error {
	if n == nil || n.rdb == nil {
		return fmt.Errorf("%w: redis client is nil", ErrNotificationDelivery)
	}
	b, err := encodeReadNotice(msg, readerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotificationDelivery, err)
	}
	if err := n.rdb.Publish(ctx, RedisReadChannel(msg.SenderID), b).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotificationDelivery, err)
	}
	return nil
}

// NatsPublisher *nats.Conn 满足该接口
type NatsPublisher interface {
	Publish(subject string, data []byte) error
}

// NatsReadNotifier 发布到 NATS subject：{prefix}.{senderID}
type NatsReadNotifier struct {
	pub    NatsPublisher
	prefix string
}

// DefaultNatsReadSubjectPrefix 默认 subject 前缀
const DefaultNatsReadSubjectPrefix = cons.NatsReadSubjectPrefix

func NewNatsReadNotifier(pub NatsPublisher, prefix string) *NatsReadNotifier {
	if prefix == "" {
		prefix = DefaultNatsReadSubjectPrefix
	}
	return &NatsReadNotifier{pub: pub, prefix: prefix}
}

func (n *NatsReadNotifier) subject(senderID uint64) string {
	return n.prefix + "." + strconv.FormatUint(senderID, 10)
}

func (n *NatsReadNotifier) NotifyRead(_ context.Context, msg *models.Message, readerID uint64) error {
	if n == nil || n.pub == nil {
		return fmt.Errorf("%w: nats publisher is nil", ErrNotificationDelivery)
	}
	b, err := encodeReadNotice(msg, readerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotificationDelivery, err)
	}
	if err := n.pub.Publish(n.subject(msg.SenderID), b); err != nil {
		return fmt.Errorf("%w: %w", ErrNotificationDelivery, err)
	}
	return nil
}

// MultiReadNotifier 依次调用所有通道，返回全部失败（errors.Join）。
type MultiReadNotifier []ReadNotifier

func (m MultiReadNotifier) NotifyRead(ctx context.Context, msg *models.Message, readerID uint64) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.NotifyRead(ctx, msg, readerID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
