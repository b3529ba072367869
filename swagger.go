package receipt_sdk

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/cydxin/read-receipt-sdk/docs"
)

const defaultSwaggerPath = "/swagger/*any"

// RegisterSwagger 注册已读回执 API 的 Swagger UI，r 可以是 *gin.Engine 或路由组。
// host 非空时覆盖文档里的 host（默认 localhost:6789），部署到别的地址后 Try it out 才能直接用；
// 已填的 Bearer token 在页面刷新后保留。
//
//	r := gin.Default()
//	receipt_sdk.RegisterSwagger(r, "", "im.example.com")
//
// 访问：http://{host}/swagger/index.html
func RegisterSwagger(r gin.IRouter, path, host string) {
	if path == "" {
		path = defaultSwaggerPath
	}
	if host != "" {
		docs.SwaggerInfo.Host = host
	}
	r.GET(path, ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		ginSwagger.DocExpansion("list"),
		ginSwagger.PersistAuthorization(true),
	))
}
