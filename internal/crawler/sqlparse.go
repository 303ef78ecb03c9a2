package crawler

import (
	"regexp"
	"strings"
)

// SQL 文本的来源表提取。正则只做尽力而为的启发式匹配：子查询等复杂写法
// 会漏报，DE 名是短通用词时会误报，这是该策略的已知代价，推导出的边会
// 标记为 inferred 以便前端区分展示。

// sourcePatterns 依次尝试 FROM/JOIN 及其子变体，方括号、双引号与裸标识符
// 作为独立模式分别匹配。
var sourcePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bFROM\s+\[([^\]]+)\]`),
	regexp.MustCompile(`(?i)\bFROM\s+"([^"]+)"`),
	regexp.MustCompile(`(?i)\bFROM\s+([A-Za-z0-9_.\-]+)`),
	regexp.MustCompile(`(?i)\b(?:LEFT\s+OUTER\s+|RIGHT\s+OUTER\s+|FULL\s+OUTER\s+|LEFT\s+|RIGHT\s+|INNER\s+|OUTER\s+|CROSS\s+)?JOIN\s+\[([^\]]+)\]`),
	regexp.MustCompile(`(?i)\b(?:LEFT\s+OUTER\s+|RIGHT\s+OUTER\s+|FULL\s+OUTER\s+|LEFT\s+|RIGHT\s+|INNER\s+|OUTER\s+|CROSS\s+)?JOIN\s+"([^"]+)"`),
	regexp.MustCompile(`(?i)\b(?:LEFT\s+OUTER\s+|RIGHT\s+OUTER\s+|FULL\s+OUTER\s+|LEFT\s+|RIGHT\s+|INNER\s+|OUTER\s+|CROSS\s+)?JOIN\s+([A-Za-z0-9_.\-]+)`),
}

// ctePattern 捕获 WITH x AS ( / , y AS ( 定义的 CTE 名，这些名字不是真实表。
var ctePattern = regexp.MustCompile(`(?i)(?:\bWITH\s+|,\s*)([A-Za-z0-9_]+)\s+AS\s*\(`)

// sqlKeywords 是不可能作为表名的候选，全部小写比对。
var sqlKeywords = map[string]struct{}{
	"select": {}, "from": {}, "join": {}, "where": {}, "group": {}, "order": {},
	"inner": {}, "outer": {}, "left": {}, "right": {}, "full": {}, "cross": {},
	"on": {}, "as": {}, "with": {}, "union": {}, "case": {}, "when": {},
	"and": {}, "or": {}, "not": {}, "null": {}, "distinct": {}, "top": {},
}

// QuerySource 是一次命中：查询文本中的表名候选与其匹配到的 DE。
type QuerySource struct {
	Table         string
	DataExtension *DataExtension
}

// ExtractTableCandidates 返回查询文本中出现的来源表候选，保留原文大小写，
// 去掉 SQL 关键字与 CTE 名，schema 限定名同时给出完整形式和末段。
func ExtractTableCandidates(query string) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	cteNames := make(map[string]struct{})
	for _, m := range ctePattern.FindAllStringSubmatch(query, -1) {
		cteNames[strings.ToLower(m[1])] = struct{}{}
	}

	seen := make(map[string]struct{})
	var candidates []string
	add := func(raw string) {
		name := strings.TrimSpace(raw)
		if name == "" {
			return
		}
		lower := strings.ToLower(name)
		if _, ok := sqlKeywords[lower]; ok {
			return
		}
		if _, ok := cteNames[lower]; ok {
			return
		}
		if _, ok := seen[lower]; ok {
			return
		}
		seen[lower] = struct{}{}
		candidates = append(candidates, name)
	}

	for _, pattern := range sourcePatterns {
		for _, m := range pattern.FindAllStringSubmatch(query, -1) {
			name := m[1]
			add(name)
			// dbo.Orders 这类限定名再尝试末段。
			if idx := strings.LastIndex(name, "."); idx >= 0 && idx < len(name)-1 {
				add(name[idx+1:])
			}
		}
	}
	return candidates
}

// MatchQuerySources 把候选表名与已知 DE 做模糊匹配：忽略大小写的相等，
// 或名称/键与候选在任一方向上的包含关系。
func MatchQuerySources(query string, des map[string]*DataExtension) []QuerySource {
	candidates := ExtractTableCandidates(query)
	if len(candidates) == 0 {
		return nil
	}

	var matches []QuerySource
	matched := make(map[string]struct{})
	for _, cand := range candidates {
		for _, de := range des {
			if !nameMatches(cand, de.Name) && !nameMatches(cand, de.Key) {
				continue
			}
			if _, ok := matched[de.ID]; ok {
				continue
			}
			matched[de.ID] = struct{}{}
			matches = append(matches, QuerySource{Table: cand, DataExtension: de})
		}
	}
	return matches
}

func nameMatches(candidate, name string) bool {
	if candidate == "" || name == "" {
		return false
	}
	c := strings.ToLower(candidate)
	n := strings.ToLower(name)
	return c == n || strings.Contains(c, n) || strings.Contains(n, c)
}
