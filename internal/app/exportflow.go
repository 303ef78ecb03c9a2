package app

import (
	"context"
	"fmt"

	"sfmc2graph/internal/crawler"
	"sfmc2graph/internal/loader"
	"go.uber.org/zap"
)

// ExportFlow 负责爬取后的图落库：建 schema -> 写节点与关系 -> 清理旧运行。
type ExportFlow struct {
	Crawler *crawler.Crawler
	Schema  *loader.SchemaManager
	Writer  *loader.GraphWriter
	Cleaner *loader.Cleaner
	Logger  *zap.Logger
}

// Run 执行一次完整的爬取加导出。
func (f *ExportFlow) Run(ctx context.Context) error {
	if f == nil {
		return fmt.Errorf("export flow 未初始化")
	}
	if f.Crawler == nil || f.Writer == nil {
		return fmt.Errorf("export flow 依赖未注入完整")
	}

	graph, err := f.Crawler.Run(ctx)
	if err != nil {
		return fmt.Errorf("爬取失败: %w", err)
	}

	runID := NewRunID()
	if f.Schema != nil {
		if err := f.Schema.Ensure(ctx); err != nil {
			return err
		}
	}
	if err := f.Writer.UpsertGraph(ctx, graph, runID); err != nil {
		return fmt.Errorf("导出图失败: %w", err)
	}
	if f.Cleaner != nil {
		if err := f.Cleaner.Run(ctx, runID); err != nil {
			return fmt.Errorf("清理旧运行失败: %w", err)
		}
	}

	if f.Logger != nil {
		f.Logger.Info("图导出完成",
			zap.String("run_id", runID),
			zap.Int("nodes", graph.Metadata.TotalNodes),
			zap.Int("edges", graph.Metadata.TotalEdges))
	}
	return nil
}
