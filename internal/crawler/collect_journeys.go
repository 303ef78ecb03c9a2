package crawler

import (
	"context"

	"sfmc2graph/internal/domain"
)

// collectJourneys 拉取 journey 列表并解析入口触发器。
// 入口 DE 优先按 id 解析；id 缺失或指不到已知 DE 时才按名称精确回退。
func (c *Crawler) collectJourneys(ctx context.Context, cc *CrawlContext) error {
	items, err := c.api.ListJourneys(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		j := &Journey{
			ID:         item.ID,
			Name:       item.Name,
			Status:     item.Status,
			Version:    item.Version,
			FolderID:   formatCategoryID(item.CategoryID),
			CreatedAt:  item.CreatedDate,
			ModifiedAt: item.ModifiedDate,
		}
		for _, t := range item.Triggers {
			trigger := EntryTrigger{
				ID:                t.ID,
				Type:              t.Type,
				DataExtensionID:   t.EntryDataExtensionID(),
				DataExtensionName: t.EntryDataExtensionName(),
			}
			j.Triggers = append(j.Triggers, trigger)

			if de := cc.resolveEntrySource(trigger); de != nil {
				cc.AddEdge(Edge{
					Source: de.ID,
					Target: j.ID,
					Type:   domain.EdgeEntrySource,
					Label:  "entry source",
				})
			}
		}
		cc.Journeys[item.ID] = j
	}
	return nil
}

// resolveEntrySource 解析触发器指向的入口 DE。id 命中时绝不再看名称。
func (c *CrawlContext) resolveEntrySource(t EntryTrigger) *DataExtension {
	if t.DataExtensionID != "" {
		if de, ok := c.DataExtensions[t.DataExtensionID]; ok {
			return de
		}
	}
	return c.DataExtensionByName(t.DataExtensionName)
}
