package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cydxin/read-receipt-sdk/service"
)

// Response 统一响应结构
type Response struct {
	Code int         `json:"code" example:"0"`                    // 业务状态码
	Msg  string      `json:"msg" example:"success"`               // 提示消息
	Data interface{} `json:"data,omitempty" swaggertype:"object"` // 响应数据
}

// 业务状态码定义
// 使用说明：
// - 中间件层/握手：使用 HTTP 状态码（401/403/500）
// - 业务层：HTTP 200 + 业务状态码；WS 错误帧复用同一套 code
const (
	CodeSuccess         = 0     // 成功
	CodeParamError      = 10001 // 参数错误
	CodeTokenInvalid    = 10004 // Token 无效/过期
	CodePermissionDeny  = 10005 // 权限不足（房间不在授权范围内）
	CodeMessageNotFound = 10006 // 消息不存在
	CodeInternalError   = 99999 // 内部错误
)

// Success 成功响应
func Success(data interface{}, args ...string) *Response {
	msg := "success"
	for _, arg := range args {
		msg = arg
	}
	return &Response{
		Code: CodeSuccess,
		Msg:  msg,
		Data: data,
	}
}

// Error 错误响应
func Error(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}

// CodeOf 将 service 层错误映射为业务状态码
func CodeOf(err error) int {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, service.ErrMalformedRequest):
		return CodeParamError
	case errors.Is(err, service.ErrAuthentication):
		return CodeTokenInvalid
	case errors.Is(err, service.ErrUnauthorizedConversation):
		return CodePermissionDeny
	case errors.Is(err, service.ErrMessageNotFound):
		return CodeMessageNotFound
	default:
		return CodeInternalError
	}
}

// FromError 根据错误生成响应；debug=false 时内部错误不暴露细节
func FromError(err error, debug bool) *Response {
	code := CodeOf(err)
	if code == CodeInternalError && !debug {
		return Error(code, "internal error")
	}
	return Error(code, err.Error())
}

// WriteJSON 写入 JSON 响应（默认 HTTP 200）
func (r *Response) WriteJSON(w http.ResponseWriter) {
	r.WriteJSONWithStatus(w, http.StatusOK) // 业务层统一返回 200
}

// WriteJSONWithStatus 写入 JSON 响应（指定 HTTP 状态码）
// 用于握手鉴权失败等场景（如 401）
func (r *Response) WriteJSONWithStatus(w http.ResponseWriter, httpStatus int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(r); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
