package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

PROFESSIONAL SUMMARY
Experienced software engineer with a strong professional background.

EXPERIENCE
Software Engineer at Acme Corp, 2018 - 2022
Led a team of developers on several projects.

EDUCATION
Bachelor's degree in Computer Science, State University

SKILLS
Python, Go, AWS, Docker
`

func TestValidateResumeContent(t *testing.T) {
	require.GreaterOrEqual(t, len(validSampleResume), minResumeTextLength, "测试样本自身应满足长度下限")
	assert.NoError(t, ValidateResumeContent(validSampleResume), "标准简历样本应通过验证")
}

func TestValidateResumeContentTooShort(t *testing.T) {
	err := ValidateResumeContent("too short")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAResume, "过短文本应返回 ErrNotAResume")
}

func TestValidateResumeContentNoIndicators(t *testing.T) {
	// 长度够但不含任何简历特征关键词
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 10)
	require.GreaterOrEqual(t, len(text), minResumeTextLength)

	err := ValidateResumeContent(text)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAResume, "无特征关键词的文本应被拒绝")
}

func TestValidateResumeContentMissingCoreSections(t *testing.T) {
	// 凑够特征关键词但避开经历/教育/技能三个核心组
	// (career, resume, objective, summary 都是特征词但不属于任何核心组)
	text := "This resume outlines my career objective and a summary of achievements. " +
		strings.Repeat("Additional filler narrative about the candidate goes here. ", 4)
	require.GreaterOrEqual(t, len(text), minResumeTextLength)

	err := ValidateResumeContent(text)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAResume, "缺少核心章节关键词组的文本应被拒绝")
}
