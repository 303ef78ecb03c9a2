package sfmc

// SOAP Retrieve 的各对象类型结果。字段在进入爬虫字典前就已经是强类型，
// 不把松散结构继续往下游传。

// DataExtensionResult 对应 DataExtension 对象。
type DataExtensionResult struct {
	ObjectID     string `xml:"ObjectID"`
	CustomerKey  string `xml:"CustomerKey"`
	Name         string `xml:"Name"`
	CategoryID   string `xml:"CategoryID"`
	IsSendable   bool   `xml:"IsSendable"`
	CreatedDate  string `xml:"CreatedDate"`
	ModifiedDate string `xml:"ModifiedDate"`
}

// DataFolderResult 对应 DataFolder 对象。
type DataFolderResult struct {
	ID           string `xml:"ID"`
	Name         string `xml:"Name"`
	ContentType  string `xml:"ContentType"`
	ParentFolder struct {
		ID string `xml:"ID"`
	} `xml:"ParentFolder"`
}

// ImportDefinitionResult 对应 ImportDefinition 对象。
type ImportDefinitionResult struct {
	ObjectID          string `xml:"ObjectID"`
	CustomerKey       string `xml:"CustomerKey"`
	Name              string `xml:"Name"`
	DestinationObject struct {
		ObjectID string `xml:"ObjectID"`
	} `xml:"DestinationObject"`
}

// FilterActivityResult 对应 FilterActivity 对象。
type FilterActivityResult struct {
	ObjectID       string `xml:"ObjectID"`
	CustomerKey    string `xml:"CustomerKey"`
	Name           string `xml:"Name"`
	SourceObjectID string `xml:"SourceObjectID"`
}

// TriggeredSendResult 对应 TriggeredSendDefinition 对象，以 CustomerKey 作主键。
type TriggeredSendResult struct {
	CustomerKey           string `xml:"CustomerKey"`
	Name                  string `xml:"Name"`
	CreatedDate           string `xml:"CreatedDate"`
	DataExtensionObjectID string `xml:"DataExtensionObjectID"`
	Email                 struct {
		ID string `xml:"ID"`
	} `xml:"Email"`
	SendClassification struct {
		CustomerKey string `xml:"CustomerKey"`
	} `xml:"SendClassification"`
}

// REST 列表接口的条目。

// AutomationItem 是 /automation/v1/automations 的条目，steps 内的活动引用
// 用于把租户级抓取的 Import/Filter 定义归属到正确的 automation。
type AutomationItem struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Status       string           `json:"status"`
	CategoryID   int64            `json:"categoryId"`
	CreatedDate  string           `json:"createdDate"`
	ModifiedDate string           `json:"modifiedDate"`
	Steps        []AutomationStep `json:"steps"`
}

// AutomationStep 是 automation 的一个执行步骤。
type AutomationStep struct {
	Activities []StepActivity `json:"activities"`
}

// StepActivity 引用步骤内的活动对象。
type StepActivity struct {
	ActivityObjectID string `json:"activityObjectId"`
	ObjectTypeID     int    `json:"objectTypeId"`
	Name             string `json:"name"`
}

// QueryActivityItem 是 /automation/v1/queries 的条目。
type QueryActivityItem struct {
	QueryDefinitionID string `json:"queryDefinitionId"`
	Name              string `json:"name"`
	QueryText         string `json:"queryText"`
	TargetID          string `json:"targetId"`
	TargetName        string `json:"targetName"`
}

// JourneyItem 是 /interaction/v1/interactions 的条目。
type JourneyItem struct {
	ID           string           `json:"id"`
	Key          string           `json:"key"`
	Name         string           `json:"name"`
	Status       string           `json:"status"`
	Version      int              `json:"version"`
	CategoryID   int64            `json:"categoryId"`
	CreatedDate  string           `json:"createdDate"`
	ModifiedDate string           `json:"modifiedDate"`
	Triggers     []JourneyTrigger `json:"triggers"`
}

// JourneyTrigger 是 journey 的入口触发器描述。入口 DE 的 id 可能出现在
// arguments、顶层或 metaData 三个位置，按此优先级取第一个非空值。
type JourneyTrigger struct {
	ID              string `json:"id"`
	Key             string `json:"key"`
	Type            string `json:"type"`
	DataExtensionID string `json:"dataExtensionId"`
	Arguments       struct {
		DataExtensionID   string `json:"dataExtensionId"`
		DataExtensionName string `json:"dataExtensionName"`
	} `json:"arguments"`
	MetaData struct {
		DataExtensionID string `json:"dataExtensionId"`
	} `json:"metaData"`
}

// EntryDataExtensionID 返回按优先级解析出的入口 DE id，没有则为空串。
func (t JourneyTrigger) EntryDataExtensionID() string {
	if t.Arguments.DataExtensionID != "" {
		return t.Arguments.DataExtensionID
	}
	if t.DataExtensionID != "" {
		return t.DataExtensionID
	}
	return t.MetaData.DataExtensionID
}

// EntryDataExtensionName 返回触发器声明的入口 DE 名称，仅作按名回退用。
func (t JourneyTrigger) EntryDataExtensionName() string {
	return t.Arguments.DataExtensionName
}
