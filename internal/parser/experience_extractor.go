package parser

import (
	"context"
	"strings"

	"resume-fit-go/internal/types"
)

// 职位行长度上限, 超过视为无法识别职位
const maxTitleLineLength = 50

// extractExperience 从经历章节抽取工作条目
// 以日期区间为条目边界: 每个区间起点到下一个区间起点为一段经历
func (b *ProfileBuilder) extractExperience(ctx context.Context, text string) []types.ExperienceEntry {
	section := b.segmenter.ExtractSection(text, ExperienceSectionKeywords)
	if section == "" {
		return []types.ExperienceEntry{}
	}

	boundaries := DateRangeBoundaryPattern.FindAllStringIndex(section, -1)
	if len(boundaries) == 0 {
		return []types.ExperienceEntry{}
	}

	entries := make([]types.ExperienceEntry, 0, len(boundaries))
	for i, loc := range boundaries {
		end := len(section)
		if i+1 < len(boundaries) {
			end = boundaries[i+1][0]
		}
		jobText := section[loc[0]:end]

		entries = append(entries, types.ExperienceEntry{
			Title:       extractJobTitle(jobText),
			Company:     b.extractCompany(ctx, jobText),
			DateRange:   section[loc[0]:loc[1]],
			Description: strings.TrimSpace(jobText),
		})
	}
	return entries
}

// extractJobTitle 职位名: 先查常见职位词表, 再降级用首行 (剔除日期后)
func extractJobTitle(jobText string) string {
	lower := strings.ToLower(jobText)
	for _, title := range CommonJobTitles {
		if strings.Contains(lower, strings.ToLower(title)) {
			return title
		}
	}

	firstLine := strings.SplitN(jobText, "\n", 2)[0]
	firstLine = strings.TrimSpace(DateRangeBoundaryPattern.ReplaceAllString(firstLine, ""))
	if len(firstLine) < maxTitleLineLength {
		return firstLine
	}
	return "Unknown Position"
}

// extractCompany 公司名: 条目文本内第一个ORG实体
func (b *ProfileBuilder) extractCompany(ctx context.Context, jobText string) string {
	if b.nlp == nil {
		return "Unknown Company"
	}

	analysis, err := b.nlp.Analyze(ctx, jobText)
	if err != nil {
		b.logger.Warn().Err(err).Msg("公司识别的NLP调用失败, 降级为未知公司")
		return "Unknown Company"
	}

	if org := analysis.FirstEntity(types.EntityOrg); org != "" {
		return org
	}
	return "Unknown Company"
}
