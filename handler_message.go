package receipt_sdk

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cydxin/read-receipt-sdk/message"
	"github.com/cydxin/read-receipt-sdk/middleware"
	"github.com/cydxin/read-receipt-sdk/response"
	"github.com/cydxin/read-receipt-sdk/service"
)

// -------------------- 已读回执相关接口 --------------------

// GinHandleWS 建立已读回执 WebSocket 连接。
// 握手时通过 Authorization 头携带 token（Bearer 前缀可选），鉴权失败返回 401 且不升级；
// 连接建立后每个 {"type":"read","room_id":11,"message_id":500} 帧回复一条 read_ack 或 error 帧。
func (c *ChatEngine) GinHandleWS(ctx *gin.Context) {
	c.ServeWS(ctx.Writer, ctx.Request)
}

// GinHandleMarkRead 标记消息已读（HTTP 方式）
// @Summary 标记消息已读
// @Description 与 WS 的 read 帧语义一致：房间必须在 token 授权范围内；重复标记返回成功。
// @Tags 已读回执
// @Accept json
// @Produce json
// @Param request body message.ReadReq true "已读请求"
// @Success 200 {object} response.Response{data=message.ReadAck} "已读确认"
// @Failure 400 {object} response.Response "参数错误"
// @Failure 401 {object} response.Response "认证失败"
// @Security BearerAuth
// @Router /message/read [post]
func (c *ChatEngine) GinHandleMarkRead(ctx *gin.Context) {
	grant, ok := middleware.GrantFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "grant not found"))
		return
	}

	var req message.ReadReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}

	res, err := c.ReadReceipt.MarkRead(ctx.Request.Context(), grant, req.RoomID, req.MessageID)
	if err != nil {
		ctx.JSON(http.StatusOK, response.FromError(err, c.config.Service.Debug))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(message.NewReadAck(&req, res.Message.ReadAt)))
}

// GinHandleGetReadState 查询消息已读状态
// @Summary 查询消息已读状态
// @Tags 已读回执
// @Produce json
// @Param room_id query uint64 true "房间ID"
// @Param message_id query uint64 true "消息ID"
// @Success 200 {object} response.Response{data=service.ReadStateDTO} "已读状态"
// @Failure 400 {object} response.Response "参数错误"
// @Failure 401 {object} response.Response "认证失败"
// @Security BearerAuth
// @Router /message/read_state [get]
func (c *ChatEngine) GinHandleGetReadState(ctx *gin.Context) {
	grant, ok := middleware.GrantFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "grant not found"))
		return
	}

	rid, err := strconv.ParseUint(ctx.Query("room_id"), 10, 64)
	if err != nil || rid == 0 {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, "invalid room_id"))
		return
	}
	mid, err := strconv.ParseUint(ctx.Query("message_id"), 10, 64)
	if err != nil || mid == 0 {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, "invalid message_id"))
		return
	}

	msg, err := c.ReadReceipt.GetReadState(ctx.Request.Context(), grant, rid, mid)
	if err != nil {
		ctx.JSON(http.StatusOK, response.FromError(err, c.config.Service.Debug))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(service.NewReadStateDTO(msg)))
}
