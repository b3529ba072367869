// Package receipt_sdk 提供消息已读回执能力：WebSocket 连接鉴权、已读标记、通知发送者
// @title Read Receipt SDK API
// @version 1.0
// @description 消息已读回执 SDK 的 RESTful API 文档
// @description
// @description ## 业务状态码说明
// @description | Code | 说明 |
// @description |------|------|
// @description | 0 | 成功 |
// @description | 10001 | 参数错误 |
// @description | 10004 | Token 无效 |
// @description | 10005 | 权限不足（房间不在授权范围内） |
// @description | 10006 | 消息不存在 |
// @description | 99999 | 内部错误 |
// @description
// @description ## HTTP 状态码说明
// @description - **200**: 业务请求成功（根据 response.code 判断业务状态）
// @description - **401**: 认证失败（未携带 token/Token 无效/已吊销）
// @description - **500**: 服务器内部错误
// @description
// @description ## WebSocket
// @description 握手 GET /ws，鉴权失败返回 401 不升级；WS 错误帧复用上面的业务状态码。
//
// @termsOfService https://github.com/cydxin/read-receipt-sdk
//
// @contact.name API Support
// @contact.url https://github.com/cydxin/read-receipt-sdk/issues
// @contact.email support@example.com
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:6789
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式：Bearer <token>
package receipt_sdk
