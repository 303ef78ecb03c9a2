package crawler

import "context"

// collectDataExtensions 拉取全部 DE 并建字典，以 ObjectID 为主键。
func (c *Crawler) collectDataExtensions(ctx context.Context, cc *CrawlContext) error {
	results, err := c.api.RetrieveDataExtensions(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.ObjectID == "" {
			continue
		}
		cc.DataExtensions[r.ObjectID] = &DataExtension{
			ID:         r.ObjectID,
			Key:        r.CustomerKey,
			Name:       r.Name,
			FolderID:   r.CategoryID,
			IsSendable: r.IsSendable,
			CreatedAt:  r.CreatedDate,
			ModifiedAt: r.ModifiedDate,
		}
	}
	return nil
}
