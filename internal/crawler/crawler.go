// Package crawler 遍历 SFMC 租户的自动化资产并推导依赖图。
// 采集按固定阶段顺序执行：Folders → DataExtensions → Automations/Activities
// → Journeys → TriggeredSends，后面的阶段依赖前面建好的字典做关系解析；
// 全部采集完成后统一解析目录路径、校验并序列化。
package crawler

import (
	"context"
	"fmt"
	"time"

	"sfmc2graph/internal/domain"
	"sfmc2graph/internal/metrics"
	"sfmc2graph/internal/sfmc"
	"go.uber.org/zap"
)

const defaultConcurrency = 4

// Crawler 执行一次完整爬取并产出依赖图。
type Crawler struct {
	api         API
	logger      *zap.Logger
	concurrency int
}

// Option 调整 Crawler 行为。
type Option func(*Crawler)

// WithConcurrency 设置 automation 子采集的并发上限。
func WithConcurrency(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// New 创建 Crawler。
func New(api API, logger *zap.Logger, opts ...Option) (*Crawler, error) {
	if api == nil {
		return nil, fmt.Errorf("必须提供 sfmc api")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Crawler{api: api, logger: logger, concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// statsDelta 计算本次爬取期间的调用统计，客户端计数器可能被多次爬取共享。
func statsDelta(before, after sfmc.Stats) sfmc.Stats {
	return sfmc.Stats{
		APICalls:   after.APICalls - before.APICalls,
		ErrorCount: after.ErrorCount - before.ErrorCount,
		Retries:    after.Retries - before.Retries,
	}
}

type phase struct {
	name string
	run  func(context.Context, *CrawlContext) error
}

// Run 执行一次爬取。任一阶段失败即整体失败，绝不返回部分图：
// 校验阶段剔除悬空边的前提是字典完整，半成品图不可安全序列化。
func (c *Crawler) Run(ctx context.Context) (*domain.Graph, error) {
	start := time.Now()
	cc := NewCrawlContext()
	startStats := c.api.Stats()

	phases := []phase{
		{"folders", c.collectFolders},
		{"dataExtensions", c.collectDataExtensions},
		{"automations", c.collectAutomations},
		{"journeys", c.collectJourneys},
		{"triggeredSends", c.collectTriggeredSends},
	}

	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		phaseStart := time.Now()
		if err := p.run(ctx, cc); err != nil {
			metrics.CrawlErrors.Inc()
			c.logger.Error("采集阶段失败", zap.String("phase", p.name), zap.Error(err))
			return nil, fmt.Errorf("阶段 %s 失败: %w", p.name, err)
		}
		c.logger.Info("采集阶段完成",
			zap.String("phase", p.name),
			zap.Duration("duration", time.Since(phaseStart)))
	}

	c.resolveFolderPaths(cc)
	c.validateAndClean(cc)

	stats := statsDelta(startStats, c.api.Stats())
	graph := c.serialize(cc, stats)

	elapsed := time.Since(start)
	metrics.CrawlDuration.Observe(elapsed.Seconds())
	metrics.APICalls.Add(float64(stats.APICalls))
	metrics.APIRetries.Add(float64(stats.Retries))

	c.logger.Info("爬取完成",
		zap.Int("nodes", graph.Metadata.TotalNodes),
		zap.Int("edges", graph.Metadata.TotalEdges),
		zap.Int64("api_calls", stats.APICalls),
		zap.Int64("retries", stats.Retries),
		zap.Duration("duration", elapsed))
	return graph, nil
}
