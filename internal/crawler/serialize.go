package crawler

import (
	"time"

	"sfmc2graph/internal/domain"
	"sfmc2graph/internal/sfmc"
)

// Version 写进输出 metadata 的 crawlerVersion。
const Version = "1.0.0"

// serialize 把字典与边列表转换为前端消费的最终图结构。每个字典条目恰好
// 对应一个节点，活动节点独立于其父 automation 节点存在。
func (c *Crawler) serialize(cc *CrawlContext, stats sfmc.Stats) *domain.Graph {
	graph := &domain.Graph{
		Nodes: make([]domain.Node, 0),
		Edges: make([]domain.Edge, 0),
	}

	for _, de := range cc.DataExtensions {
		graph.Nodes = append(graph.Nodes, domain.Node{
			ID:    domain.MakeNodeID(domain.PrefixDataExtension, de.ID),
			Label: de.Name,
			Type:  string(domain.KindDataExtension),
			Data: map[string]any{
				"customerKey": de.Key,
				"folderId":    de.FolderID,
				"folderPath":  de.FolderPath,
				"isSendable":  de.IsSendable,
				"createdAt":   de.CreatedAt,
				"modifiedAt":  de.ModifiedAt,
			},
		})
	}
	for _, auto := range cc.Automations {
		graph.Nodes = append(graph.Nodes, domain.Node{
			ID:    domain.MakeNodeID(domain.PrefixAutomation, auto.ID),
			Label: auto.Name,
			Type:  string(domain.KindAutomation),
			Data: map[string]any{
				"status":     auto.Status,
				"folderId":   auto.FolderID,
				"folderPath": auto.FolderPath,
				"createdAt":  auto.CreatedAt,
				"modifiedAt": auto.ModifiedAt,
				"activities": len(auto.Activities),
			},
		})
		for _, act := range auto.Activities {
			data := map[string]any{
				"automationId": auto.ID,
			}
			switch act.Kind {
			case domain.KindSQL:
				data["targetId"] = act.TargetID
				data["queryText"] = act.QueryText
			case domain.KindImport:
				data["destinationObjectId"] = act.TargetID
			case domain.KindFilter:
				data["dataSourceObjectId"] = act.SourceID
			}
			graph.Nodes = append(graph.Nodes, domain.Node{
				ID:    domain.MakeNodeID(domain.PrefixActivity, act.ID),
				Label: act.Name,
				Type:  string(act.Kind),
				Data:  data,
			})
		}
	}
	for _, j := range cc.Journeys {
		graph.Nodes = append(graph.Nodes, domain.Node{
			ID:    domain.MakeNodeID(domain.PrefixJourney, j.ID),
			Label: j.Name,
			Type:  string(domain.KindJourney),
			Data: map[string]any{
				"status":     j.Status,
				"version":    j.Version,
				"folderId":   j.FolderID,
				"folderPath": j.FolderPath,
				"createdAt":  j.CreatedAt,
				"modifiedAt": j.ModifiedAt,
				"triggers":   len(j.Triggers),
			},
		})
	}
	for _, ts := range cc.TriggeredSends {
		graph.Nodes = append(graph.Nodes, domain.Node{
			ID:    domain.MakeNodeID(domain.PrefixTriggeredSend, ts.ID),
			Label: ts.Name,
			Type:  string(domain.KindTriggeredSend),
			Data: map[string]any{
				"emailId":            ts.EmailID,
				"sendClassification": ts.SendClassification,
				"createdAt":          ts.CreatedAt,
				"dataExtensionId":    ts.DataExtensionID,
			},
		})
	}

	for _, e := range cc.Edges() {
		source := cc.AddNodePrefix(e.Source)
		target := cc.AddNodePrefix(e.Target)
		edge := domain.Edge{
			ID:     source + "_" + target,
			Source: source,
			Target: target,
			Type:   e.Type,
			Label:  e.Label,
		}
		if e.Inferred {
			edge.Data = map[string]any{"inferred": true}
		}
		graph.Edges = append(graph.Edges, edge)
	}

	duration := time.Since(cc.StartedAt)
	graph.Metadata = domain.Metadata{
		TotalNodes:     len(graph.Nodes),
		TotalEdges:     len(graph.Edges),
		DataExtensions: len(cc.DataExtensions),
		Automations:    len(cc.Automations),
		Journeys:       len(cc.Journeys),
		TriggeredSends: len(cc.TriggeredSends),
		CrawledAt:      time.Now().UTC().Format(time.RFC3339),
		CrawlerVersion: Version,
		Performance:    buildPerformance(duration, stats, len(graph.Nodes)),
	}
	return graph
}

func buildPerformance(duration time.Duration, stats sfmc.Stats, objects int) domain.Performance {
	perf := domain.Performance{
		DurationMs: duration.Milliseconds(),
		APICalls:   stats.APICalls,
		Errors:     stats.ErrorCount,
		Retries:    stats.Retries,
	}
	if stats.APICalls > 0 {
		perf.SuccessRate = float64(stats.APICalls-stats.ErrorCount) / float64(stats.APICalls)
	}
	if secs := duration.Seconds(); secs > 0 {
		perf.ObjectsPerSecond = float64(objects) / secs
	}
	return perf
}
