package ioc

import (
	"context"

	"sfmc2graph/internal/app"
	"sfmc2graph/internal/job"
	"go.uber.org/zap"
)

// InitScheduler 构建定时任务调度器。配置了 Neo4j 时定时任务走完整的
// 爬取加导出，否则只做爬取验证。
func InitScheduler(cfg app.Config, svc *app.Service, logger *zap.Logger) *job.Scheduler {
	var syncFn func(context.Context) error
	if svc != nil {
		if cfg.ExportEnabled() {
			syncFn = svc.Export
		} else {
			syncFn = func(ctx context.Context) error {
				_, err := svc.Crawl(ctx)
				return err
			}
		}
	}
	return job.NewScheduler(cfg, syncFn, logger)
}
