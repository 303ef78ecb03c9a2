package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CrawlDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sfmc_crawl_duration_seconds",
		Help:    "单次爬取耗时",
		Buckets: prometheus.DefBuckets,
	})

	CrawlErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sfmc_crawl_errors_total",
		Help: "爬取失败次数",
	})

	APICalls = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sfmc_api_calls_total",
		Help: "出站 API 调用次数",
	})

	APIRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sfmc_api_retries_total",
		Help: "出站 API 重试次数",
	})
)

// MustRegister 注册指标，可在 main 中调用。
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(CrawlDuration, CrawlErrors, APICalls, APIRetries)
}
