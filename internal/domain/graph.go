package domain

// Graph 是爬取结束后交给前端渲染层的最终结构，字段名是对外契约，不可改名。
type Graph struct {
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Metadata Metadata `json:"metadata"`
}

// Node 表示一个带前缀 id 的图节点。
type Node struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Type  string         `json:"type"`
	Data  map[string]any `json:"data"`
}

// Edge 表示一条有向带类型的关系。id 为 <source>_<target>，同一对节点存在多种
// 关系时 id 会重复，下游按 (source, target, type) 三元组去重。
type Edge struct {
	ID     string         `json:"id"`
	Source string         `json:"source"`
	Target string         `json:"target"`
	Type   string         `json:"type"`
	Label  string         `json:"label"`
	Data   map[string]any `json:"data,omitempty"`
}

// Metadata 汇总计数与性能信息，仅用于观测，不参与正确性。
type Metadata struct {
	TotalNodes     int         `json:"totalNodes"`
	TotalEdges     int         `json:"totalEdges"`
	DataExtensions int         `json:"dataExtensions"`
	Automations    int         `json:"automations"`
	Journeys       int         `json:"journeys"`
	TriggeredSends int         `json:"triggeredSends"`
	CrawledAt      string      `json:"crawledAt"`
	CrawlerVersion string      `json:"crawlerVersion"`
	Performance    Performance `json:"performance"`
}

// Performance 记录单次爬取的调用与耗时统计。
type Performance struct {
	DurationMs       int64   `json:"durationMs"`
	APICalls         int64   `json:"apiCalls"`
	Errors           int64   `json:"errors"`
	Retries          int64   `json:"retries"`
	SuccessRate      float64 `json:"successRate"`
	ObjectsPerSecond float64 `json:"objectsPerSecond"`
}
