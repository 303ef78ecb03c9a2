package router

import (
	"errors"

	"sfmc2graph/internal/app"
	"sfmc2graph/internal/sfmc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GraphHandler 负责处理依赖图相关的 HTTP 请求。
type GraphHandler struct {
	service *app.Service
	logger  *zap.Logger
}

// NewGraphHandler 构建一个新的 GraphHandler。
func NewGraphHandler(service *app.Service, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{service: service, logger: logger}
}

// RegisterRoutes 将依赖图路由注册到给定的路由组。
func (h *GraphHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/crawl", h.handleCrawl)
}

// handleCrawl 同步执行一次爬取并原样返回图结构。爬取要么给出完整图，
// 要么带着失败阶段的上下文报错，绝不返回残缺的图。
func (h *GraphHandler) handleCrawl(c *gin.Context) {
	graph, err := h.service.Crawl(c.Request.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error("crawl failed", zap.Error(err))
		}
		if errors.Is(err, sfmc.ErrUnauthorized) {
			c.JSON(401, gin.H{"error": err.Error(), "reauth_required": true})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, graph)
}
