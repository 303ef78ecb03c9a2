package loader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sfmc2graph/internal/cypher"
	"sfmc2graph/internal/domain"
	"sfmc2graph/pkg/util"
)

// GraphWriter 把一次爬取产出的图整体写入 Neo4j。节点按类型分组建标签，
// 边按关系类型分组，单向导出，不做任何回写对账。
type GraphWriter struct {
	client    *Client
	batchSize int
}

// NewGraphWriter 创建图写入器。
func NewGraphWriter(client *Client, batchSize int) *GraphWriter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &GraphWriter{client: client, batchSize: batchSize}
}

// UpsertGraph 写入全部节点与边，并以 runID 标记本次导出。
func (w *GraphWriter) UpsertGraph(ctx context.Context, graph *domain.Graph, runID string) error {
	if graph == nil {
		return fmt.Errorf("graph 不能为空")
	}
	if err := w.writeNodes(ctx, graph.Nodes, runID); err != nil {
		return err
	}
	return w.writeEdges(ctx, graph.Edges, runID)
}

func (w *GraphWriter) writeNodes(ctx context.Context, nodes []domain.Node, runID string) error {
	grouped := make(map[string][]domain.Node)
	for _, n := range nodes {
		grouped[n.Type] = append(grouped[n.Type], n)
	}
	now := time.Now().UTC()

	for label, rows := range grouped {
		query := cypher.MustTemplate("upsert_nodes.cql", map[string]string{"Label": label})
		for _, chunk := range util.Batch(rows, w.batchSize) {
			params := map[string]any{"rows": toNodeParameters(chunk, runID, now)}
			if err := w.client.RunWrite(ctx, query, params); err != nil {
				return fmt.Errorf("写入节点失败 type=%s: %w", label, err)
			}
		}
	}
	return nil
}

func (w *GraphWriter) writeEdges(ctx context.Context, edges []domain.Edge, runID string) error {
	grouped := make(map[string][]domain.Edge)
	seen := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		// 输出边 id 允许重复，落库前按 (source, target, type) 去重。
		key := e.Source + "|" + e.Target + "|" + e.Type
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		grouped[e.Type] = append(grouped[e.Type], e)
	}

	for edgeType, rows := range grouped {
		query := cypher.MustTemplate("upsert_rels.cql", map[string]string{"RelType": relTypeFor(edgeType)})
		for _, chunk := range util.Batch(rows, w.batchSize) {
			params := map[string]any{"rows": toRelParameters(chunk, runID)}
			if err := w.client.RunWrite(ctx, query, params); err != nil {
				return fmt.Errorf("写入关系失败 type=%s: %w", edgeType, err)
			}
		}
	}
	return nil
}

func toNodeParameters(nodes []domain.Node, runID string, now time.Time) []map[string]any {
	res := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, map[string]any{
			"id":           n.ID,
			"label":        n.Label,
			"properties":   n.Data,
			"content_hash": util.HashMap(n.Data),
			"run_id":       runID,
			"updated_at":   now,
		})
	}
	return res
}

func toRelParameters(edges []domain.Edge, runID string) []map[string]any {
	res := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		inferred := false
		if e.Data != nil {
			if v, ok := e.Data["inferred"].(bool); ok {
				inferred = v
			}
		}
		res = append(res, map[string]any{
			"source":   e.Source,
			"target":   e.Target,
			"label":    e.Label,
			"inferred": inferred,
			"run_id":   runID,
		})
	}
	return res
}

// relTypeFor 把输出边类型映射为 Cypher 关系类型。
func relTypeFor(edgeType string) string {
	switch edgeType {
	case domain.EdgeEntrySource:
		return "ENTRY_SOURCE"
	default:
		return strings.ToUpper(edgeType)
	}
}
