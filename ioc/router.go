package ioc

import (
	"sfmc2graph/internal/app"
	"sfmc2graph/internal/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InitGraphHandler 构建依赖图 HTTP 处理器。
func InitGraphHandler(svc *app.Service, logger *zap.Logger) *router.GraphHandler {
	return router.NewGraphHandler(svc, logger)
}

// InitGinEngine 构建 gin 引擎。
func InitGinEngine(graphHandler *router.GraphHandler) *gin.Engine {
	return router.NewEngine(graphHandler)
}
