package cons

// 已读回执相关的事件类型（event_type）
const (
	EventMessageRead = "message.read" // 消息被读，推给发送者
)

// 外部通道命名
const (
	RedisReadChannelPrefix  = "im:read:"          // PUBLISH im:read:{sender_id}
	NatsReadSubjectPrefix   = "im.read"           // {prefix}.{sender_id}
	RedisTokenRevokedPrefix = "im:token_revoked:" // SET im:token_revoked:{jti} 1 EX ttl
)
