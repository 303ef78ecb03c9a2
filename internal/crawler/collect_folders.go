package crawler

import (
	"context"
	"strings"
)

// collectFolders 拉取启用中的内容目录并建字典，是后续目录路径解析的基础。
func (c *Crawler) collectFolders(ctx context.Context, cc *CrawlContext) error {
	results, err := c.api.RetrieveFolders(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.ID == "" {
			continue
		}
		cc.Folders[r.ID] = &Folder{
			ID:          r.ID,
			Name:        strings.TrimSpace(r.Name),
			ParentID:    r.ParentFolder.ID,
			ContentType: r.ContentType,
		}
	}
	return nil
}
