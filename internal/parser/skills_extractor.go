package parser

import "strings"

// 单项技能的长度约束
const (
	maxSkillLength = 50
	minSkillLength = 3
)

// extractSkills 从技能章节抽取技能列表
// 按 SkillSeparators 优先级尝试分隔符, 第一个出现且切出有效结果的生效;
// 最后做大小写不敏感去重, 保留首次出现的写法
func (b *ProfileBuilder) extractSkills(text string) []string {
	section := b.segmenter.ExtractSection(text, SkillsSectionKeywords)
	if section == "" {
		return []string{}
	}

	var raw []string
	for _, sep := range SkillSeparators {
		if !strings.Contains(section, sep) {
			continue
		}
		candidate := splitAndFilter(section, sep)
		if len(candidate) > 0 {
			raw = candidate
			break
		}
	}
	if raw == nil {
		return []string{}
	}

	seen := make(map[string]bool, len(raw))
	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		if len(s) < minSkillLength {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, s)
	}
	return skills
}

func splitAndFilter(section, sep string) []string {
	parts := strings.Split(section, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || len(p) >= maxSkillLength {
			continue
		}
		out = append(out, p)
	}
	return out
}
