package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const segmenterSampleResume = `John Smith
john.smith@example.com

EXPERIENCE
Software Engineer at TechCorp
2018 - 2022
Built backend services in Go.

EDUCATION
Bachelor's degree in Computer Science
State University, 2014 - 2018

SKILLS
Python, React, AWS
`

func TestExtractSectionBoundaries(t *testing.T) {
	s := NewSectionSegmenter()

	// 经历章节应该终止于下一个规范章节名 (education)
	section := s.ExtractSection(segmenterSampleResume, ExperienceSectionKeywords)
	require.NotEmpty(t, section, "应该能定位到经历章节")
	assert.True(t, strings.HasPrefix(strings.ToLower(section), "experience"), "章节应从关键词处开始")
	assert.Contains(t, section, "TechCorp", "章节应包含经历内容")
	assert.NotContains(t, section, "State University", "章节不应跨入教育章节")
	assert.NotContains(t, section, "Python", "章节不应跨入技能章节")

	// 教育章节终止于 skills
	education := s.ExtractSection(segmenterSampleResume, EducationSectionKeywords)
	assert.Contains(t, education, "State University", "教育章节应包含机构名")
	assert.NotContains(t, education, "Python", "教育章节不应包含技能内容")
}

func TestExtractSectionToEndOfText(t *testing.T) {
	s := NewSectionSegmenter()

	// 技能是最后一个章节, 没有后续边界时应取到文末
	section := s.ExtractSection(segmenterSampleResume, SkillsSectionKeywords)
	assert.Contains(t, section, "Python, React, AWS", "最后一个章节应延伸到文末")
}

func TestExtractSectionMissing(t *testing.T) {
	s := NewSectionSegmenter()

	text := "A short note about nothing in particular."
	section := s.ExtractSection(text, EducationSectionKeywords)
	assert.Equal(t, "", section, "找不到章节关键词时应返回空串")
}

func TestExtractSectionPreservesCase(t *testing.T) {
	s := NewSectionSegmenter()

	text := "EXPERIENCE\nWorked at BigCo\nEDUCATION\nPhD"
	section := s.ExtractSection(text, ExperienceSectionKeywords)
	assert.Contains(t, section, "EXPERIENCE", "定位用小写视图, 返回切片应保持原始大小写")
	assert.Contains(t, section, "BigCo")
}

func TestExtractSectionEarliestKeywordWins(t *testing.T) {
	s := NewSectionSegmenter()

	// employment 出现在 experience 之前, 起点应取最早命中
	text := "Employment history at Acme\nMore details\nExperience with Go\nEducation\nBSc"
	section := s.ExtractSection(text, ExperienceSectionKeywords)
	assert.True(t, strings.HasPrefix(strings.ToLower(section), "employment"), "起点应取所有关键词中最早的命中位置")
}
