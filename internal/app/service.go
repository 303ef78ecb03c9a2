package app

import (
	"context"
	"fmt"
	"time"

	"sfmc2graph/internal/crawler"
	"sfmc2graph/internal/domain"
	"sfmc2graph/internal/loader"
	"go.uber.org/zap"
)

// Service 负责装配爬取与导出流程并提供统一入口。
type Service struct {
	cfg        Config
	crawler    *crawler.Crawler
	neoClient  *loader.Client
	ExportFlow *ExportFlow
	logger     *zap.Logger
}

// NewService 根据配置构建 Service。配置了 Neo4j 时才建立导出通道。
func NewService(ctx context.Context, cfg Config, api crawler.API, logger *zap.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("必须提供 sfmc api")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cr, err := crawler.New(api, logger, crawler.WithConcurrency(cfg.Crawl.Concurrency))
	if err != nil {
		return nil, err
	}

	svc := &Service{cfg: cfg, crawler: cr, logger: logger}

	if cfg.ExportEnabled() {
		neoClient, err := loader.NewClient(ctx, loader.Config{
			URI:                  cfg.Neo4j.URI,
			Username:             cfg.Neo4j.Username,
			Password:             cfg.Neo4j.Password,
			Database:             cfg.Neo4j.Database,
			MaxConnectionPool:    cfg.Neo4j.MaxConnectionPool,
			ConnectionTimeoutSec: cfg.Neo4j.ConnectTimeoutSecond,
		})
		if err != nil {
			return nil, err
		}
		svc.neoClient = neoClient
		svc.ExportFlow = &ExportFlow{
			Crawler: cr,
			Schema:  loader.NewSchemaManager(neoClient),
			Writer:  loader.NewGraphWriter(neoClient, cfg.Neo4j.BatchSize),
			Cleaner: loader.NewCleaner(neoClient),
			Logger:  logger,
		}
	}
	return svc, nil
}

// Crawl 执行一次爬取并返回完整图；任一阶段失败则不返回图。
func (s *Service) Crawl(ctx context.Context) (*domain.Graph, error) {
	return s.crawler.Run(ctx)
}

// Export 爬取并把结果图写入 Neo4j。
func (s *Service) Export(ctx context.Context) error {
	if s.ExportFlow == nil {
		return fmt.Errorf("未配置 neo4j 导出目标")
	}
	return s.ExportFlow.Run(ctx)
}

// Close 释放资源。
func (s *Service) Close(ctx context.Context) error {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
	if s.neoClient != nil {
		return s.neoClient.Close(ctx)
	}
	return nil
}

// NewRunID 生成导出运行标识，按时间有序，便于清理旧数据。
func NewRunID() string {
	return time.Now().UTC().Format("20060102T150405Z")
}
