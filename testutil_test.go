package receipt_sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cydxin/read-receipt-sdk/models"
)

var testSecret = []byte("receipt-test-secret")

type fixture struct {
	engine *ChatEngine
	srv    *httptest.Server
	db     *gorm.DB
	rdb    *redis.Client
	mr     *miniredis.Miniredis
}

// newSQLiteDB 内存 SQLite；单连接，事务靠连接串行化
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqldb, err := db.DB()
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqldb.Close() })
	return db
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	db := newSQLiteDB(t)
	base := []Option{WithDB(db), WithRDB(rdb), WithTokenSecret(testSecret)}
	e, err := NewEngine(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(e.Close)

	r := gin.New()
	e.RegisterRoutes(r, "")
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &fixture{engine: e, srv: srv, db: db, rdb: rdb, mr: mr}
}

func (f *fixture) token(t *testing.T, userID uint64, rooms ...uint64) string {
	t.Helper()
	tok, err := f.engine.AuthService.Tokens().IssueToken(userID, rooms, time.Hour)
	require.NoError(t, err)
	return tok
}

func (f *fixture) wsURL() string {
	return "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws"
}

// dial 建立连接并等待 hub 完成注册
func (f *fixture) dial(t *testing.T, userID uint64, rooms ...uint64) *websocket.Conn {
	t.Helper()
	before := f.engine.WsServer.UserConnCount(userID)

	h := http.Header{}
	h.Set("Authorization", "Bearer "+f.token(t, userID, rooms...))
	conn, resp, err := websocket.DefaultDialer.Dial(f.wsURL(), h)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return f.engine.WsServer.UserConnCount(userID) == before+1
	}, 2*time.Second, 10*time.Millisecond)
	return conn
}

func (f *fixture) seed(t *testing.T, msg *models.Message) *models.Message {
	t.Helper()
	if msg.Content == "" {
		msg.Content = "hello"
	}
	require.NoError(t, f.db.Create(msg).Error)
	return msg
}

func (f *fixture) load(t *testing.T, id uint64) *models.Message {
	t.Helper()
	var m models.Message
	require.NoError(t, f.db.First(&m, id).Error)
	return &m
}

func sendRead(t *testing.T, conn *websocket.Conn, roomID, messageID uint64, packetID string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":       "read",
		"room_id":    roomID,
		"message_id": messageID,
		"packet_id":  packetID,
	}))
}

// readFrame 读一帧并解到 v，超时视为失败
func readFrame(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), "frame: %s", data)
}

// expectSilence 在 d 时间内不应收到任何帧
func expectSilence(t *testing.T, conn *websocket.Conn, d time.Duration) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(d)))
	_, data, err := conn.ReadMessage()
	require.Error(t, err, "unexpected frame: %s", data)
}

type failingNotifier struct{}

func (failingNotifier) NotifyRead(context.Context, *models.Message, uint64) error {
	return context.DeadlineExceeded
}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNotifier) NotifyRead(context.Context, *models.Message, uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return nil
}

func (n *countingNotifier) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}
