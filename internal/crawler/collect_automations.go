package crawler

import (
	"context"
	"strconv"
	"sync"

	"sfmc2graph/internal/domain"
	"sfmc2graph/internal/sfmc"
)

// collectAutomations 拉取 automation 列表与其活动，并建立 contains 边和
// 活动到目标 DE 的边。Import/Filter 定义是租户级对象，整个爬取只抓一次，
// 再按 automation steps 里的活动引用归属，避免在循环里反复拉全量列表。
func (c *Crawler) collectAutomations(ctx context.Context, cc *CrawlContext) error {
	items, err := c.api.ListAutomations(ctx)
	if err != nil {
		return err
	}

	imports, err := c.api.RetrieveImportDefinitions(ctx)
	if err != nil {
		return err
	}
	importByID := make(map[string]sfmc.ImportDefinitionResult, len(imports))
	for _, imp := range imports {
		if imp.ObjectID != "" {
			importByID[imp.ObjectID] = imp
		}
	}

	filters, err := c.api.RetrieveFilterActivities(ctx)
	if err != nil {
		return err
	}
	filterByID := make(map[string]sfmc.FilterActivityResult, len(filters))
	for _, f := range filters {
		if f.ObjectID != "" {
			filterByID[f.ObjectID] = f
		}
	}

	autos := make([]*Automation, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		auto := &Automation{
			ID:         item.ID,
			Name:       item.Name,
			Status:     item.Status,
			FolderID:   formatCategoryID(item.CategoryID),
			CreatedAt:  item.CreatedDate,
			ModifiedAt: item.ModifiedDate,
		}
		cc.Automations[item.ID] = auto
		autos = append(autos, auto)

		for _, step := range item.Steps {
			for _, ref := range step.Activities {
				if imp, ok := importByID[ref.ActivityObjectID]; ok {
					c.attachImportActivity(cc, auto, imp)
					continue
				}
				if f, ok := filterByID[ref.ActivityObjectID]; ok {
					c.attachFilterActivity(cc, auto, f)
				}
			}
		}
	}

	return c.collectQueryActivities(ctx, cc, autos)
}

// collectQueryActivities 并发拉取每个 automation 的 SQL 查询活动。
// 各 goroutine 只写自己的 automation，边通过 AddEdge 的锁追加。
func (c *Crawler) collectQueryActivities(ctx context.Context, cc *CrawlContext, autos []*Automation) error {
	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, auto := range autos {
		auto := auto
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed {
				return
			}

			queries, err := c.api.ListQueryActivities(ctx, auto.ID)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			for _, q := range queries {
				c.attachQueryActivity(cc, auto, q)
			}
		}()
	}
	wg.Wait()
	return firstErr
}

func (c *Crawler) attachQueryActivity(cc *CrawlContext, auto *Automation, q sfmc.QueryActivityItem) {
	if q.QueryDefinitionID == "" {
		return
	}
	act := &Activity{
		ID:        q.QueryDefinitionID,
		Name:      q.Name,
		Kind:      domain.KindSQL,
		TargetID:  q.TargetID,
		QueryText: q.QueryText,
	}
	auto.Activities = append(auto.Activities, act)
	cc.AddEdge(Edge{Source: auto.ID, Target: act.ID, Type: domain.EdgeContains, Label: "contains"})

	// 目标 DE 已知才建边，未知则跳过，后续阶段不回填。
	if _, ok := cc.DataExtensions[q.TargetID]; ok {
		cc.AddEdge(Edge{Source: act.ID, Target: q.TargetID, Type: domain.EdgeTargets, Label: "writes to"})
	}

	for _, src := range MatchQuerySources(q.QueryText, cc.DataExtensions) {
		cc.AddEdge(Edge{
			Source:   src.DataExtension.ID,
			Target:   act.ID,
			Type:     domain.EdgeUses,
			Label:    "reads from",
			Inferred: true,
		})
	}
}

func (c *Crawler) attachImportActivity(cc *CrawlContext, auto *Automation, imp sfmc.ImportDefinitionResult) {
	act := &Activity{
		ID:       imp.ObjectID,
		Name:     imp.Name,
		Kind:     domain.KindImport,
		TargetID: imp.DestinationObject.ObjectID,
	}
	auto.Activities = append(auto.Activities, act)
	cc.AddEdge(Edge{Source: auto.ID, Target: act.ID, Type: domain.EdgeContains, Label: "contains"})

	if _, ok := cc.DataExtensions[act.TargetID]; ok {
		cc.AddEdge(Edge{Source: act.ID, Target: act.TargetID, Type: domain.EdgeImports, Label: "imports to"})
	}
}

func (c *Crawler) attachFilterActivity(cc *CrawlContext, auto *Automation, f sfmc.FilterActivityResult) {
	act := &Activity{
		ID:       f.ObjectID,
		Name:     f.Name,
		Kind:     domain.KindFilter,
		SourceID: f.SourceObjectID,
	}
	auto.Activities = append(auto.Activities, act)
	cc.AddEdge(Edge{Source: auto.ID, Target: act.ID, Type: domain.EdgeContains, Label: "contains"})

	if _, ok := cc.DataExtensions[act.SourceID]; ok {
		cc.AddEdge(Edge{Source: act.ID, Target: act.SourceID, Type: domain.EdgeFiltersFrom, Label: "filters from"})
	}
}

func formatCategoryID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
