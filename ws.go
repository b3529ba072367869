package receipt_sdk

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cydxin/read-receipt-sdk/response"
	"github.com/cydxin/read-receipt-sdk/service"
)

const (
	// Time 写入超时时间
	writeWait = 10 * time.Second

	// Time pong超时时间
	pongWait = 60 * time.Second

	// Send 对应的ping 必须小于pong
	pingPeriod = (pongWait * 9) / 10

	// Maximum 对等端允许消息大小（传输层上限，字段长度由 binding 校验）
	maxMessageSize = 8 << 10

	// 每个连接的发送缓冲
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for SDK
	},
}

var (
	errClientClosed   = errors.New("client closed")
	errSendBufferFull = errors.New("send buffer full")
)

// Session 单个连接的授权状态：握手鉴权成功后创建，之后只读，连接断开即丢弃。
// 只属于一个 Client，不在连接之间共享。
type Session struct {
	ID          string
	Grant       *service.Grant
	ConnectedAt time.Time
}

// UserID 当前连接的用户
func (s *Session) UserID() uint64 {
	if s == nil || s.Grant == nil {
		return 0
	}
	return s.Grant.UserID
}

// FrameWriter 向当前连接回写一帧
type FrameWriter interface {
	WriteFrame(data []byte) error
}

// ConnHandler 连接生命周期回调，由 WsServer 驱动：
// - OnConnect 握手阶段（升级前）调用，返回错误则拒绝升级，不创建任何状态
// - OnMessage 每个入站帧调用一次，同一连接内严格串行；返回错误表示连接不可用，关闭连接
// - OnClose 连接注销时调用
type ConnHandler interface {
	OnConnect(r *http.Request) (*Session, error)
	OnMessage(w FrameWriter, sess *Session, frame []byte) error
	OnClose(sess *Session)
}

// Client ws和hub的连接
type Client struct {
	hub *WsServer

	// 🔗链接
	conn *websocket.Conn

	// 消息缓冲区，只由 writePump 消费
	send chan []byte

	// session 握手时确定的授权状态
	session *Session

	mu     sync.Mutex
	closed bool
}

// WriteFrame 把一帧放进发送缓冲；连接已关闭或缓冲已满时返回错误。
func (c *Client) WriteFrame(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump 逐帧读取并交给 handler，一个连接只有这一个读协程，因此帧按到达顺序处理。
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { _ = c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump session=%s error: %v", c.session.ID, err)
			}
			break
		}
		if err := c.hub.handler.OnMessage(c, c.session, frame); err != nil {
			log.Printf("readPump session=%s closing: %v", c.session.ID, err)
			break
		}
	}
}

// writePump 将消息从发送缓冲写到具体的 websocket 连接；每条消息独立成帧。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("writePump session=%s write failed: %v", c.session.ID, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("writePump session=%s 写入ping失败", c.session.ID)
				return
			}
		}
	}
}

// WsServer 管理在线连接。连接级授权状态在各自的 Session 里，
// 这里的索引只用于向用户推送通知。
type WsServer struct {
	clients map[*Client]bool
	// 用户ID ->该用户所有活跃的Websocket连接（支持多设备）
	userClients map[uint64][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex

	handler ConnHandler
}

func NewWsServer(handler ConnHandler) *WsServer {
	return &WsServer{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		clients:     make(map[*Client]bool),
		userClients: make(map[uint64][]*Client),
		handler:     handler,
	}
}

// Run 处理注册/注销，ctx 结束时关闭全部连接。
func (h *WsServer) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			closed := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				h.removeLocked(client)
				_ = client.conn.Close()
				closed = append(closed, client)
			}
			h.mu.Unlock()
			if h.handler != nil {
				for _, client := range closed {
					h.handler.OnClose(client.session)
				}
			}
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			uid := client.session.UserID()
			h.userClients[uid] = append(h.userClients[uid], client)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			h.removeLocked(client)
			h.mu.Unlock()
			if ok && h.handler != nil {
				h.handler.OnClose(client.session)
			}
		}
	}
}

func (h *WsServer) removeLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.close()

	uid := client.session.UserID()
	conns := h.userClients[uid]
	for i, conn := range conns {
		if conn == client {
			conns = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(conns) == 0 {
		delete(h.userClients, uid)
	} else {
		h.userClients[uid] = conns
	}
}

// ServeWS 处理ws的请求：先鉴权，成功后才升级。
func (h *WsServer) ServeWS(w http.ResponseWriter, r *http.Request) {
	sess, err := h.handler.OnConnect(r)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrAuthentication) {
			status = http.StatusUnauthorized
		}
		response.FromError(err, false).WriteJSONWithStatus(w, status)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		session: sess,
	}
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}
	log.Printf("注册进去: user=%d session=%s", sess.UserID(), sess.ID)

	go client.writePump()
	go client.readPump()
}

// SendToUser 发送消息到用户的所有在线连接，返回成功放入缓冲的连接数
func (h *WsServer) SendToUser(userID uint64, msg []byte) int {
	h.mu.RLock()
	clients := append([]*Client(nil), h.userClients[userID]...)
	h.mu.RUnlock()

	delivered := 0
	for _, client := range clients {
		if err := client.WriteFrame(msg); err == nil {
			delivered++
		}
	}
	return delivered
}

// ClientCount 当前在线连接数
func (h *WsServer) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// UserConnCount 某用户在线连接数
func (h *WsServer) UserConnCount(userID uint64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients[userID])
}
