package crawler

import (
	"context"

	"sfmc2graph/internal/domain"
)

// collectTriggeredSends 拉取 TriggeredSendDefinition，以 CustomerKey 作 id，
// 关联 DE 可解析时建 uses 边。
func (c *Crawler) collectTriggeredSends(ctx context.Context, cc *CrawlContext) error {
	results, err := c.api.RetrieveTriggeredSends(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.CustomerKey == "" {
			continue
		}
		ts := &TriggeredSend{
			ID:                 r.CustomerKey,
			Name:               r.Name,
			EmailID:            r.Email.ID,
			SendClassification: r.SendClassification.CustomerKey,
			CreatedAt:          r.CreatedDate,
			DataExtensionID:    r.DataExtensionObjectID,
		}
		cc.TriggeredSends[r.CustomerKey] = ts

		if _, ok := cc.DataExtensions[ts.DataExtensionID]; ok {
			cc.AddEdge(Edge{
				Source: ts.ID,
				Target: ts.DataExtensionID,
				Type:   domain.EdgeUses,
				Label:  "uses data from",
			})
		}
	}
	return nil
}
