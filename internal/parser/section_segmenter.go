package parser

import "strings"

// SectionSegmenter 基于关键词定位的章节切分器
// 在小写视图上定位, 返回原文切片, 保持原始大小写
type SectionSegmenter struct{}

// NewSectionSegmenter 创建章节切分器
func NewSectionSegmenter() *SectionSegmenter {
	return &SectionSegmenter{}
}

// ExtractSection 提取 keywords 定位到的章节文本
// 起点取所有关键词的最早命中; 终点取起点之后最早出现的其他章节名;
// 找不到起点返回空串, 找不到终点返回到文末
func (s *SectionSegmenter) ExtractSection(text string, keywords []string) string {
	lower := strings.ToLower(text)

	start := -1
	for _, kw := range keywords {
		idx := strings.Index(lower, kw)
		if idx == -1 {
			continue
		}
		if start == -1 || idx < start {
			start = idx
		}
	}
	if start == -1 {
		return ""
	}

	end := len(text)
	for _, next := range s.boundaryNames(keywords) {
		// 从 start+1 开始找, 避免章节标题自身被当作终点
		idx := indexFrom(lower, next, start+1)
		if idx != -1 && idx < end {
			end = idx
		}
	}

	return text[start:end]
}

// boundaryNames 终点候选: 规范章节名剔除当前章节自己的关键词
func (s *SectionSegmenter) boundaryNames(keywords []string) []string {
	present := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		present[kw] = true
	}

	names := make([]string, 0, len(CanonicalSectionNames))
	for _, name := range CanonicalSectionNames {
		if !present[name] {
			names = append(names, name)
		}
	}
	return names
}

func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.Index(s[from:], substr)
	if idx == -1 {
		return -1
	}
	return from + idx
}
