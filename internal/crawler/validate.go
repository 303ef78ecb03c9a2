package crawler

import (
	"fmt"
	"strings"

	"sfmc2graph/internal/domain"
	"go.uber.org/zap"
)

// validateAndClean 修补缺失名称、去除名称/键两端空白，并丢弃端点不存在的
// 边。这是唯一一处剔除悬空边的地方，其他组件不做边过滤。
func (c *Crawler) validateAndClean(cc *CrawlContext) {
	for id, de := range cc.DataExtensions {
		de.Name = strings.TrimSpace(de.Name)
		de.Key = strings.TrimSpace(de.Key)
		if de.Name == "" {
			if de.Key != "" {
				de.Name = de.Key
			} else {
				de.Name = placeholderName(domain.KindDataExtension, id)
			}
		}
	}
	for id, auto := range cc.Automations {
		auto.Name = strings.TrimSpace(auto.Name)
		if auto.Name == "" {
			auto.Name = placeholderName(domain.KindAutomation, id)
		}
		for _, act := range auto.Activities {
			act.Name = strings.TrimSpace(act.Name)
			if act.Name == "" {
				act.Name = placeholderName(act.Kind, act.ID)
			}
		}
	}
	for id, j := range cc.Journeys {
		j.Name = strings.TrimSpace(j.Name)
		if j.Name == "" {
			j.Name = placeholderName(domain.KindJourney, id)
		}
	}
	for id, ts := range cc.TriggeredSends {
		ts.Name = strings.TrimSpace(ts.Name)
		if ts.Name == "" {
			ts.Name = placeholderName(domain.KindTriggeredSend, id)
		}
	}

	edges := cc.Edges()
	kept := edges[:0]
	dropped := 0
	for _, e := range edges {
		if cc.NodeExists(e.Source) && cc.NodeExists(e.Target) {
			kept = append(kept, e)
		} else {
			dropped++
		}
	}
	cc.SetEdges(kept)

	if dropped > 0 && c.logger != nil {
		c.logger.Info("校验丢弃悬空边", zap.Int("dropped", dropped))
	}
}

func placeholderName(kind domain.Kind, id string) string {
	return fmt.Sprintf("Unnamed_%s_%s", kind, id)
}
