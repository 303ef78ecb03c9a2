package crawler

import (
	"sync"
	"time"

	"sfmc2graph/internal/domain"
)

// CrawlContext 持有一次爬取的全部字典与边列表，显式传递给各阶段，
// 不使用任何跨爬取的共享状态。
type CrawlContext struct {
	DataExtensions map[string]*DataExtension
	Folders        map[string]*Folder
	Automations    map[string]*Automation
	Journeys       map[string]*Journey
	TriggeredSends map[string]*TriggeredSend

	mu    sync.Mutex
	edges []Edge

	StartedAt time.Time
}

// NewCrawlContext 创建空的爬取上下文。
func NewCrawlContext() *CrawlContext {
	return &CrawlContext{
		DataExtensions: make(map[string]*DataExtension),
		Folders:        make(map[string]*Folder),
		Automations:    make(map[string]*Automation),
		Journeys:       make(map[string]*Journey),
		TriggeredSends: make(map[string]*TriggeredSend),
		StartedAt:      time.Now(),
	}
}

// AddEdge 追加一条边。automation 子采集阶段存在并发追加，这里用互斥锁保护；
// 边的顺序不做任何保证。
func (c *CrawlContext) AddEdge(e Edge) {
	c.mu.Lock()
	c.edges = append(c.edges, e)
	c.mu.Unlock()
}

// Edges 返回当前边列表的副本。
func (c *CrawlContext) Edges() []Edge {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Edge, len(c.edges))
	copy(out, c.edges)
	return out
}

// SetEdges 用校验后的边列表整体替换，仅 Validate 阶段调用。
func (c *CrawlContext) SetEdges(edges []Edge) {
	c.mu.Lock()
	c.edges = edges
	c.mu.Unlock()
}

// DataExtensionByName 按名称精确匹配 DE（大小写敏感），journey 按名回退使用。
func (c *CrawlContext) DataExtensionByName(name string) *DataExtension {
	if name == "" {
		return nil
	}
	for _, de := range c.DataExtensions {
		if de.Name == name {
			return de
		}
	}
	return nil
}

// ActivityByID 在全部 automation 中查找活动。
func (c *CrawlContext) ActivityByID(id string) *Activity {
	for _, auto := range c.Automations {
		for _, act := range auto.Activities {
			if act.ID == id {
				return act
			}
		}
	}
	return nil
}

// AddNodePrefix 把裸 id 解析成带前缀的输出 id。已带前缀的 id 原样返回，
// 因此该操作幂等。裸 id 按 DE → Automation → Journey → TriggeredSend →
// 活动扫描的固定优先级查找，均未命中时退回 node_ 前缀。
func (c *CrawlContext) AddNodePrefix(id string) string {
	if domain.HasKnownPrefix(id) {
		return id
	}
	if _, ok := c.DataExtensions[id]; ok {
		return domain.MakeNodeID(domain.PrefixDataExtension, id)
	}
	if _, ok := c.Automations[id]; ok {
		return domain.MakeNodeID(domain.PrefixAutomation, id)
	}
	if _, ok := c.Journeys[id]; ok {
		return domain.MakeNodeID(domain.PrefixJourney, id)
	}
	if _, ok := c.TriggeredSends[id]; ok {
		return domain.MakeNodeID(domain.PrefixTriggeredSend, id)
	}
	if c.ActivityByID(id) != nil {
		return domain.MakeNodeID(domain.PrefixActivity, id)
	}
	return domain.MakeNodeID(domain.PrefixFallback, id)
}

// NodeExists 判断一个（裸或带前缀的）id 是否指向任一字典中的实体。
func (c *CrawlContext) NodeExists(id string) bool {
	raw := domain.StripPrefix(id)
	if _, ok := c.DataExtensions[raw]; ok {
		return true
	}
	if _, ok := c.Automations[raw]; ok {
		return true
	}
	if _, ok := c.Journeys[raw]; ok {
		return true
	}
	if _, ok := c.TriggeredSends[raw]; ok {
		return true
	}
	return c.ActivityByID(raw) != nil
}
