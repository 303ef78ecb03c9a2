package crawler

// BuildFolderPath 沿父链拼接目录路径，/ 分隔，根目录（ParentID 为空或 "0"）
// 不贡献前缀。目录缺失时该分支短路为空串；父链成环时停在环点，返回已
// 累计的路径，绝不无限递归。
func (c *CrawlContext) BuildFolderPath(folderID string) string {
	return c.buildFolderPath(folderID, make(map[string]struct{}))
}

func (c *CrawlContext) buildFolderPath(folderID string, visiting map[string]struct{}) string {
	if folderID == "" || folderID == "0" {
		return ""
	}
	folder, ok := c.Folders[folderID]
	if !ok {
		return ""
	}
	if _, seen := visiting[folderID]; seen {
		return ""
	}
	visiting[folderID] = struct{}{}

	parent := c.buildFolderPath(folder.ParentID, visiting)
	if parent == "" {
		return folder.Name
	}
	return parent + "/" + folder.Name
}

// resolveFolderPaths 为全部资产计算目录路径。路径是目录树的纯函数，
// 每次爬取重新计算，不跨爬取缓存。
func (c *Crawler) resolveFolderPaths(cc *CrawlContext) {
	for _, de := range cc.DataExtensions {
		de.FolderPath = cc.BuildFolderPath(de.FolderID)
	}
	for _, auto := range cc.Automations {
		auto.FolderPath = cc.BuildFolderPath(auto.FolderID)
	}
	for _, j := range cc.Journeys {
		j.FolderPath = cc.BuildFolderPath(j.FolderID)
	}
}
