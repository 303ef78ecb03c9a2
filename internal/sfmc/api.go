package sfmc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// restPage 是 REST 列表接口的通用分页外壳。
type restPage[T any] struct {
	Count    int `json:"count"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Items    []T `json:"items"`
}

// getJSON 执行 REST GET 并解析 JSON。解析失败归类为 ParseError，不重试。
func getJSON[T any](ctx context.Context, c *Client, path string, objectType string) (T, error) {
	var out T
	data, err := c.call(ctx, http.MethodGet, c.restBase+path, nil, "")
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &ParseError{ObjectType: objectType, Err: err}
	}
	return out, nil
}

// listPages 逐页拉取 REST 列表接口直到取完。
func listPages[T any](ctx context.Context, c *Client, path string, query url.Values, objectType string) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("$pageSize") == "" {
		query.Set("$pageSize", "50")
	}

	var all []T
	page := 1
	for {
		query.Set("$page", strconv.Itoa(page))
		pageData, err := getJSON[restPage[T]](ctx, c, path+"?"+query.Encode(), objectType)
		if err != nil {
			return nil, err
		}
		if len(pageData.Items) == 0 {
			break
		}
		all = append(all, pageData.Items...)

		if pageData.PageSize > 0 && pageData.Count > 0 && page*pageData.PageSize >= pageData.Count {
			break
		}
		page++
	}
	return all, nil
}

// RetrieveDataExtensions 拉取全部 DataExtension。
func (c *Client) RetrieveDataExtensions(ctx context.Context) ([]DataExtensionResult, error) {
	props := []string{"ObjectID", "CustomerKey", "Name", "CategoryID", "IsSendable", "CreatedDate", "ModifiedDate"}
	return retrieve[DataExtensionResult](ctx, c, "DataExtension", props, nil)
}

// RetrieveFolders 拉取全部启用中的 DataFolder。
func (c *Client) RetrieveFolders(ctx context.Context) ([]DataFolderResult, error) {
	props := []string{"ID", "Name", "ParentFolder.ID", "ContentType"}
	filter := SimpleFilter{Property: "IsActive", Operator: "equals", Value: "true"}
	return retrieve[DataFolderResult](ctx, c, "DataFolder", props, filter)
}

// RetrieveImportDefinitions 拉取租户内全部 ImportDefinition。每次爬取只调用
// 一次，归属关系由调用方按 automation steps 交叉比对。
func (c *Client) RetrieveImportDefinitions(ctx context.Context) ([]ImportDefinitionResult, error) {
	props := []string{"ObjectID", "CustomerKey", "Name", "DestinationObject.ObjectID"}
	return retrieve[ImportDefinitionResult](ctx, c, "ImportDefinition", props, nil)
}

// RetrieveFilterActivities 拉取租户内全部 FilterActivity，同样每次爬取一次。
func (c *Client) RetrieveFilterActivities(ctx context.Context) ([]FilterActivityResult, error) {
	props := []string{"ObjectID", "CustomerKey", "Name", "SourceObjectID"}
	return retrieve[FilterActivityResult](ctx, c, "FilterActivity", props, nil)
}

// RetrieveTriggeredSends 拉取全部 TriggeredSendDefinition。
func (c *Client) RetrieveTriggeredSends(ctx context.Context) ([]TriggeredSendResult, error) {
	props := []string{
		"CustomerKey", "Name", "CreatedDate", "Email.ID",
		"SendClassification.CustomerKey", "DataExtensionObjectID",
	}
	return retrieve[TriggeredSendResult](ctx, c, "TriggeredSendDefinition", props, nil)
}

// ListAutomations 逐页拉取 automation 列表。
func (c *Client) ListAutomations(ctx context.Context) ([]AutomationItem, error) {
	return listPages[AutomationItem](ctx, c, "/automation/v1/automations", nil, "Automation")
}

// ListQueryActivities 拉取指定 automation 的 SQL 查询活动。
func (c *Client) ListQueryActivities(ctx context.Context, automationID string) ([]QueryActivityItem, error) {
	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("automationId eq '%s'", automationID))
	return listPages[QueryActivityItem](ctx, c, "/automation/v1/queries", query, "QueryActivity")
}

// ListJourneys 逐页拉取 journey 列表。
func (c *Client) ListJourneys(ctx context.Context) ([]JourneyItem, error) {
	query := url.Values{}
	query.Set("extras", "triggers")
	return listPages[JourneyItem](ctx, c, "/interaction/v1/interactions", query, "Journey")
}
