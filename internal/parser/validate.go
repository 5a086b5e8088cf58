package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotAResume 文本过短或不具备简历特征
var ErrNotAResume = errors.New("文本内容不是简历")

// 内容验证的最小文本长度和最少特征关键词数
const (
	minResumeTextLength = 200
	minIndicatorHits    = 3
)

// ValidateResumeContent 验证纯文本是否像一份简历
// 三道闸: 长度下限, 特征关键词数量, 核心章节关键词组至少命中一组
func ValidateResumeContent(text string) error {
	if len(text) < minResumeTextLength {
		return fmt.Errorf("%w: 文本长度 %d 低于下限 %d", ErrNotAResume, len(text), minResumeTextLength)
	}

	lower := strings.ToLower(text)

	hits := 0
	for _, kw := range ResumeIndicatorKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	if hits < minIndicatorHits {
		return fmt.Errorf("%w: 特征关键词命中 %d 个, 少于 %d 个", ErrNotAResume, hits, minIndicatorHits)
	}

	if !containsAny(lower, ValidationExperienceGroup) &&
		!containsAny(lower, ValidationEducationGroup) &&
		!containsAny(lower, ValidationSkillsGroup) {
		return fmt.Errorf("%w: 缺少经历/教育/技能任一核心章节", ErrNotAResume)
	}

	return nil
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
