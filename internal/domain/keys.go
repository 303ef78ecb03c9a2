package domain

import "strings"

// Kind 表示图中节点的实体类型，前端按该值分组与着色。
type Kind string

const (
	KindDataExtension Kind = "DataExtension"
	KindAutomation    Kind = "Automation"
	KindJourney       Kind = "Journey"
	KindTriggeredSend Kind = "TriggeredSend"
	KindSQL           Kind = "SQL"
	KindImport        Kind = "Import"
	KindFilter        Kind = "Filter"
)

const (
	PrefixDataExtension = "de"
	PrefixAutomation    = "auto"
	PrefixJourney       = "journey"
	PrefixTriggeredSend = "ts"
	PrefixActivity      = "activity"
	PrefixFallback      = "node"
)

const (
	EdgeContains    = "contains"
	EdgeTargets     = "targets"
	EdgeImports     = "imports"
	EdgeFiltersFrom = "filters_from"
	EdgeUses        = "uses"
	EdgeEntrySource = "entrySource"
)

// knownPrefixes 是输出 id 允许携带的全部前缀，顺序无意义。
var knownPrefixes = []string{
	PrefixDataExtension,
	PrefixAutomation,
	PrefixJourney,
	PrefixTriggeredSend,
	PrefixActivity,
	PrefixFallback,
}

// EntityRef 在内部代替裸字符串 id，序列化边界才拼接前缀。
type EntityRef struct {
	Kind Kind
	ID   string
}

// MakeNodeID 统一生成带前缀的节点 id，避免不同实体的裸 id 冲突。
func MakeNodeID(prefix, rawID string) string {
	return prefix + "_" + rawID
}

// HasKnownPrefix 判断 id 是否已经带前缀。
func HasKnownPrefix(id string) bool {
	for _, p := range knownPrefixes {
		if strings.HasPrefix(id, p+"_") {
			return true
		}
	}
	return false
}

// StripPrefix 去掉已知前缀，返回裸 id；未带前缀则原样返回。
func StripPrefix(id string) string {
	for _, p := range knownPrefixes {
		if strings.HasPrefix(id, p+"_") {
			return id[len(p)+1:]
		}
	}
	return id
}

// KindPrefix 返回实体类型对应的前缀。
func KindPrefix(kind Kind) string {
	switch kind {
	case KindDataExtension:
		return PrefixDataExtension
	case KindAutomation:
		return PrefixAutomation
	case KindJourney:
		return PrefixJourney
	case KindTriggeredSend:
		return PrefixTriggeredSend
	case KindSQL, KindImport, KindFilter:
		return PrefixActivity
	default:
		return PrefixFallback
	}
}

// NodeID 返回引用实体的输出 id。
func (r EntityRef) NodeID() string {
	return MakeNodeID(KindPrefix(r.Kind), r.ID)
}
