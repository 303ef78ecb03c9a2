package ioc

import (
	"context"

	"sfmc2graph/internal/app"
	"sfmc2graph/internal/crawler"
	"go.uber.org/zap"
)

// InitAppService 构建爬取导出服务。
func InitAppService(ctx context.Context, cfg app.Config, api crawler.API, logger *zap.Logger) (*app.Service, error) {
	return app.NewService(ctx, cfg, api, logger)
}
