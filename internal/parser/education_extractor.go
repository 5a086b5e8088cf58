package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"resume-fit-go/internal/types"
)

// 学位上下文窗口: 学位词前100字节到词尾后200字节
const (
	degreeContextBefore = 100
	degreeContextAfter  = 200
)

// extractEducation 从教育章节抽取学历条目
// 以学位关键词为锚点, 在其上下文窗口内找年份, 机构和专业
func (b *ProfileBuilder) extractEducation(ctx context.Context, text string) []types.EducationEntry {
	section := b.segmenter.ExtractSection(text, EducationSectionKeywords)
	if section == "" {
		return []types.EducationEntry{}
	}

	entries := []types.EducationEntry{}
	for _, loc := range DegreePattern.FindAllStringIndex(section, -1) {
		start := loc[0] - degreeContextBefore
		if start < 0 {
			start = 0
		}
		end := loc[1] + degreeContextAfter
		if end > len(section) {
			end = len(section)
		}
		window := section[start:end]

		entries = append(entries, types.EducationEntry{
			Degree:       section[loc[0]:loc[1]],
			Institution:  b.extractInstitution(ctx, window),
			DateRange:    extractYearRange(window),
			FieldOfStudy: extractFieldOfStudy(window),
		})
	}
	return entries
}

// extractYearRange 窗口内最早和最晚年份组成区间, 无年份返回空串
func extractYearRange(window string) string {
	years := YearPattern.FindAllString(window, -1)
	if len(years) == 0 {
		return ""
	}

	min, max := 9999, 0
	for _, y := range years {
		n, err := strconv.Atoi(y)
		if err != nil {
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%d - %d", min, max)
}

// extractInstitution 对窗口单独做一次实体识别,
// 取第一个带机构关键词的ORG实体
func (b *ProfileBuilder) extractInstitution(ctx context.Context, window string) string {
	if b.nlp == nil {
		return "Unknown Institution"
	}

	analysis, err := b.nlp.Analyze(ctx, window)
	if err != nil {
		b.logger.Warn().Err(err).Msg("机构识别的NLP调用失败, 降级为未知机构")
		return "Unknown Institution"
	}

	for _, e := range analysis.Entities {
		if e.Label != types.EntityOrg {
			continue
		}
		lowerText := strings.ToLower(e.Text)
		for _, kw := range InstitutionKeywords {
			if strings.Contains(lowerText, kw) {
				return e.Text
			}
		}
	}
	return "Unknown Institution"
}

// extractFieldOfStudy 专业领域闭集匹配, 未命中返回 Not Specified
func extractFieldOfStudy(window string) string {
	lower := strings.ToLower(window)
	for _, field := range FieldOfStudyVocabulary {
		if strings.Contains(lower, field) {
			return titleCase(field)
		}
	}
	return "Not Specified"
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
