package receipt_sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/cydxin/read-receipt-sdk/message"
	"github.com/cydxin/read-receipt-sdk/response"
	"github.com/cydxin/read-receipt-sdk/service"
)

// receiptHandler 已读回执连接的回调。
// 放在包根目录（同 WsServer/engine.go 同级），这样可以直接访问 Client 类型，避免 service 层循环依赖。
type receiptHandler struct {
	engine *ChatEngine
}

// OnConnect 握手鉴权，失败时不升级、不建 session
func (h *receiptHandler) OnConnect(r *http.Request) (*Session, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.engine.config.HandshakeTimeout)
	defer cancel()

	grant, err := h.engine.AuthService.AuthenticateRequest(ctx, r)
	if err != nil {
		log.Printf("receiptHandler.OnConnect remote=%s rejected: %v", r.RemoteAddr, err)
		return nil, err
	}
	sess := &Session{
		ID:          uuid.NewString(),
		Grant:       grant,
		ConnectedAt: time.Now(),
	}
	log.Printf("receiptHandler.OnConnect session=%s user=%d rooms=%v", sess.ID, grant.UserID, grant.RoomIDs())
	return sess, nil
}

// OnMessage 每帧恰好回一帧：确认或错误。只有写失败才会断开连接。
func (h *receiptHandler) OnMessage(w FrameWriter, sess *Session, frame []byte) error {
	out := h.handleRead(sess, frame)
	if err := w.WriteFrame(out); err != nil {
		return fmt.Errorf("session %s: write frame: %w", sess.ID, err)
	}
	return nil
}

func (h *receiptHandler) OnClose(sess *Session) {
	log.Printf("receiptHandler.OnClose session=%s user=%d", sess.ID, sess.UserID())
}

func (h *receiptHandler) handleRead(sess *Session, frame []byte) []byte {
	req, err := decodeReadFrame(frame)
	if err != nil {
		return h.errorFrame(sess, req, err)
	}

	res, err := h.engine.ReadReceipt.MarkRead(context.Background(), sess.Grant, req.RoomID, req.MessageID)
	if err != nil {
		return h.errorFrame(sess, req, err)
	}

	out, err := json.Marshal(message.NewReadAck(req, res.Message.ReadAt))
	if err != nil {
		return h.errorFrame(sess, req, err)
	}
	log.Printf("receiptHandler.handleRead session=%s user=%d room=%d msg=%d changed=%v", sess.ID, sess.UserID(), req.RoomID, req.MessageID, res.Changed)
	return out
}

func (h *receiptHandler) errorFrame(sess *Session, req *message.ReadReq, err error) []byte {
	log.Printf("receiptHandler.handleRead session=%s user=%d room=%d msg=%d: %v", sess.ID, sess.UserID(), req.RoomID, req.MessageID, err)

	resp := response.FromError(err, h.engine.config.Service.Debug)
	out, _ := json.Marshal(&message.ErrorFrame{
		Type:      message.WsTypeError,
		Code:      resp.Code,
		Message:   resp.Msg,
		RoomID:    req.RoomID,
		MessageID: req.MessageID,
		PacketID:  req.PacketID,
	})
	return out
}

// decodeReadFrame 解析并校验已读帧。出错时也返回已解析的部分，便于错误帧回带 id。
func decodeReadFrame(frame []byte) (*message.ReadReq, error) {
	var req message.ReadReq
	if err := json.Unmarshal(frame, &req); err != nil {
		return &req, fmt.Errorf("%w: %v", service.ErrMalformedRequest, err)
	}
	if req.Type != "" && req.Type != message.WsTypeRead {
		return &req, fmt.Errorf("%w: unsupported type %q", service.ErrMalformedRequest, req.Type)
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return &req, fmt.Errorf("%w: %v", service.ErrMalformedRequest, err)
	}
	return &req, nil
}
