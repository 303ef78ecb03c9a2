package loader

import (
	"context"
	"fmt"
	"strings"

	"sfmc2graph/internal/cypher"
)

// Cleaner 在导出成功后删除上一次运行遗留的节点和关系。
type Cleaner struct {
	client *Client
}

func NewCleaner(client *Client) *Cleaner {
	return &Cleaner{client: client}
}

// Run 删除 run_id 早于本次运行的全部数据。
func (c *Cleaner) Run(ctx context.Context, runID string) error {
	statements := strings.Split(cypher.MustAsset("cleanup.cql"), ";")
	for _, raw := range statements {
		query := strings.TrimSpace(raw)
		if query == "" {
			continue
		}
		if err := c.client.RunWrite(ctx, query, map[string]any{"run_id": runID}); err != nil {
			return fmt.Errorf("清理过期数据失败: %w", err)
		}
	}
	return nil
}
