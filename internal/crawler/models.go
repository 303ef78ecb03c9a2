package crawler

import "sfmc2graph/internal/domain"

// 爬取期间的内存实体。一次爬取内视为不可变，跨爬取不复用。

// DataExtension 表示 SFMC 的数据表。
type DataExtension struct {
	ID         string
	Key        string
	Name       string
	FolderID   string
	IsSendable bool
	CreatedAt  string
	ModifiedAt string
	FolderPath string
}

// Folder 表示内容目录树的一个节点，ParentID 为空或 "0" 时是根目录。
type Folder struct {
	ID          string
	Name        string
	ParentID    string
	ContentType string
}

// Activity 是 automation 内的一个活动。约定活动由其 automation 独占，
// 不跨 automation 共享。
type Activity struct {
	ID        string
	Name      string
	Kind      domain.Kind
	TargetID  string // SQL 写入目标 / Import 目的 DE
	SourceID  string // Filter 的数据来源 DE
	QueryText string // 仅 SQL 活动
}

// Automation 表示一条自动化流程及其持有的活动列表。
type Automation struct {
	ID         string
	Name       string
	Status     string
	FolderID   string
	CreatedAt  string
	ModifiedAt string
	FolderPath string
	Activities []*Activity
}

// EntryTrigger 是 journey 的入口触发器，id 缺失时才允许按名称回退。
type EntryTrigger struct {
	ID                string
	Type              string
	DataExtensionID   string
	DataExtensionName string
}

// Journey 表示一条客户旅程。
type Journey struct {
	ID         string
	Name       string
	Status     string
	Version    int
	FolderID   string
	CreatedAt  string
	ModifiedAt string
	FolderPath string
	Triggers   []EntryTrigger
}

// TriggeredSend 表示事件触发的单封邮件发送定义，以 CustomerKey 作 id。
type TriggeredSend struct {
	ID                 string
	Name               string
	EmailID            string
	SendClassification string
	CreatedAt          string
	DataExtensionID    string
}

// Edge 是两个实体间的一条有向关系，端点为裸 id，序列化时统一加前缀。
// 边是每次爬取重新推导的事实，没有独立生命周期。
type Edge struct {
	Source   string
	Target   string
	Type     string
	Label    string
	Inferred bool
}
