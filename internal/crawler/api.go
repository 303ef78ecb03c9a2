package crawler

import (
	"context"

	"sfmc2graph/internal/sfmc"
)

// API 抽象爬虫依赖的 SFMC 接口面，便于测试替换实现。
// *sfmc.Client 是生产实现。
type API interface {
	RetrieveFolders(ctx context.Context) ([]sfmc.DataFolderResult, error)
	RetrieveDataExtensions(ctx context.Context) ([]sfmc.DataExtensionResult, error)
	ListAutomations(ctx context.Context) ([]sfmc.AutomationItem, error)
	ListQueryActivities(ctx context.Context, automationID string) ([]sfmc.QueryActivityItem, error)
	RetrieveImportDefinitions(ctx context.Context) ([]sfmc.ImportDefinitionResult, error)
	RetrieveFilterActivities(ctx context.Context) ([]sfmc.FilterActivityResult, error)
	ListJourneys(ctx context.Context) ([]sfmc.JourneyItem, error)
	RetrieveTriggeredSends(ctx context.Context) ([]sfmc.TriggeredSendResult, error)
	Stats() sfmc.Stats
}
